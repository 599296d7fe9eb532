package domain

import "fmt"

// Patient 患者
// 患者列表没有分类维度：只有 "All" 过滤条件会保留记录
type Patient struct {
	ID        string `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name"`
	Email     string `json:"email" yaml:"email"`
	Phone     string `json:"phone,omitempty" yaml:"phone,omitempty"`
	CreatedAt string `json:"createdAt" yaml:"createdAt"`
}

func (p Patient) RecordID() string { return p.ID }

func (p Patient) Category() string { return "" }

func (p Patient) SearchFields() []string {
	return []string{p.Name, p.ID, p.Email, p.Phone}
}

func (p Patient) SortName() string { return p.Name }

func (p Patient) DisplayName() string {
	return fmt.Sprintf("%s (%s)", p.Name, p.Email)
}
