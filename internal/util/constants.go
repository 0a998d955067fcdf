package util

const DateFormat = "2006-01-02"

const (
	SessionStoreRedis  = "redis"
	SessionStoreMemory = "memory"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)
