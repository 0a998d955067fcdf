// 导入每日测评题库
//
// 题库为 YAML 文件（格式见 data/questions.sample.yaml），整批在一个事务内写入，
// 重复执行会重复插入，仅用于初始化或追加新题。
//
// 用法: go run scripts/seed_questions.go -file data/questions.sample.yaml

package main

import (
	"child_growth_backend/internal/config"
	"child_growth_backend/pkg/database"
	"child_growth_backend/pkg/logger"
	"flag"
	"log"
	"os"

	"go.uber.org/zap"
)

func main() {
	configDir := flag.String("config", "configs", "配置文件所在目录")
	file := flag.String("file", "data/questions.sample.yaml", "题库文件")
	flag.Parse()

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	db, err := database.InitDB(&cfg.Database, false)
	if err != nil {
		logger.Log.Fatal("数据库连接失败", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		logger.Log.Fatal("数据库迁移失败", zap.Error(err))
	}

	f, err := os.Open(*file)
	if err != nil {
		logger.Log.Fatal("无法打开题库文件", zap.String("file", *file), zap.Error(err))
	}
	defer f.Close()

	n, err := database.SeedQuestions(db, f)
	if err != nil {
		logger.Log.Fatal("导入题库失败", zap.Error(err))
	}
	logger.Log.Info("题库导入完成", zap.Int("questions", n))
}
