package model

import "sort"

// Dimension 能力维度（固定分类，按 SortNo 展示）
type Dimension struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	SortNo int    `json:"sortNo"`
}

const (
	DimensionLanguage   = "LANGUAGE"
	DimensionLogic      = "LOGIC"
	DimensionSocial     = "SOCIAL"
	DimensionEmotion    = "EMOTION"
	DimensionSelfCare   = "SELF_CARE"
	DimensionCreativity = "CREATIVITY"
)

var Dimensions = []Dimension{
	{Code: DimensionLanguage, Name: "语言表达", SortNo: 1},
	{Code: DimensionLogic, Name: "逻辑思维", SortNo: 2},
	{Code: DimensionSocial, Name: "社会交往", SortNo: 3},
	{Code: DimensionEmotion, Name: "情绪管理", SortNo: 4},
	{Code: DimensionSelfCare, Name: "生活自理", SortNo: 5},
	{Code: DimensionCreativity, Name: "创造想象", SortNo: 6},
}

var dimensionIndex = func() map[string]Dimension {
	m := make(map[string]Dimension, len(Dimensions))
	for _, d := range Dimensions {
		m[d.Code] = d
	}
	return m
}()

// LookupDimension 未知编码返回 ok=false
func LookupDimension(code string) (Dimension, bool) {
	d, ok := dimensionIndex[code]
	return d, ok
}

// DimensionScore 聚合后的单维度得分
type DimensionScore struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// SortDimensionScores 按分类顺序排序，未知编码排在最后（同为未知时按编码排序）
func SortDimensionScores(scores []DimensionScore) {
	sort.SliceStable(scores, func(i, j int) bool {
		di, oki := dimensionIndex[scores[i].Code]
		dj, okj := dimensionIndex[scores[j].Code]
		switch {
		case oki && okj:
			return di.SortNo < dj.SortNo
		case oki != okj:
			return oki
		default:
			return scores[i].Code < scores[j].Code
		}
	})
}
