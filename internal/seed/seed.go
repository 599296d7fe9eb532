// Package seed 提供启动时的静态种子数据（员工 / 患者 / 预约）。
package seed

import (
	_ "embed"
	"fmt"
	"io"

	"github.com/Ahmed-Morsi888/Doctor-system/internal/domain"

	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var defaultSeed []byte

// Data 种子数据
type Data struct {
	Employees    []domain.Employee    `yaml:"employees"`
	Patients     []domain.Patient     `yaml:"patients"`
	Reservations []domain.Reservation `yaml:"reservations"`
}

// Load 解析内置种子数据
func Load() (*Data, error) {
	return parse(defaultSeed)
}

// LoadFrom 从外部 YAML 读取种子数据
func LoadFrom(r io.Reader) (*Data, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read seed: %w", err)
	}
	return parse(b)
}

func parse(b []byte) (*Data, error) {
	var d Data
	if err := yaml.Unmarshal(b, &d); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}
	if err := checkUnique("employees", d.Employees); err != nil {
		return nil, err
	}
	if err := checkUnique("patients", d.Patients); err != nil {
		return nil, err
	}
	if err := checkUnique("reservations", d.Reservations); err != nil {
		return nil, err
	}
	return &d, nil
}

type identified interface {
	RecordID() string
}

// checkUnique 集合内 ID 必须唯一且非空
func checkUnique[T identified](collection string, items []T) error {
	seen := make(map[string]struct{}, len(items))
	for i, it := range items {
		id := it.RecordID()
		if id == "" {
			return fmt.Errorf("seed %s[%d]: empty id", collection, i)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("seed %s: duplicate id %q", collection, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}
