package domain

import "fmt"

// Category 评估类别，覆盖六大人道主义响应板块
type Category string

const (
	CategoryHealth     Category = "HEALTH"
	CategoryFood       Category = "FOOD"
	CategoryWash       Category = "WASH"
	CategoryShelter    Category = "SHELTER"
	CategorySecurity   Category = "SECURITY"
	CategoryPopulation Category = "POPULATION"
)

// Categories 按固定顺序返回全部评估类别
func Categories() []Category {
	return []Category{
		CategoryHealth,
		CategoryFood,
		CategoryWash,
		CategoryShelter,
		CategorySecurity,
		CategoryPopulation,
	}
}

// Valid 判断类别是否属于封闭枚举
func (c Category) Valid() bool {
	switch c {
	case CategoryHealth, CategoryFood, CategoryWash,
		CategoryShelter, CategorySecurity, CategoryPopulation:
		return true
	}
	return false
}

// ParseCategory 解析类别字符串（大写）
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", fmt.Errorf("unknown assessment category: %q", s)
	}
	return c, nil
}
