package jobdb

import "strings"

// skillKeywords is the tag vocabulary matched against position titles.
// Extend it as the listings drift toward new disciplines.
var skillKeywords = []string{
	"Python", "Java", "C++", "Go", "SQL", "算法", "芯片", "硬件",
	"软件", "测试", "销售", "职能", "通信", "微波", "计算机",
	"机械", "材料", "产品", "运营", "模拟",
}

// ExtractSkills returns the skill tags mentioned in a position title,
// in vocabulary order, each at most once.
func ExtractSkills(position string) []string {
	var skills []string
	for _, keyword := range skillKeywords {
		if strings.Contains(position, keyword) {
			skills = append(skills, keyword)
		}
	}
	return skills
}
