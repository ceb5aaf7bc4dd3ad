package loader

import (
	"gopkg.in/yaml.v3"
)

type YAMLPackage struct {
	Package      string            `yaml:"package"`
	Aliases      []YAMLAlias       `yaml:"aliases"`
	Enumerations []YAMLEnumeration `yaml:"enumerations"`
	Entities     []YAMLEntity      `yaml:"entities"`
}

type YAMLAlias struct {
	Name          string `yaml:"name"`
	YAMLPrimitive `yaml:",inline"`
}

type YAMLEnumeration struct {
	Name   string   `yaml:"name"`
	Values []string `yaml:"values"`
}

type YAMLEntity struct {
	Name   string      `yaml:"name"`
	Fields []YAMLField `yaml:"fields"`
}

// YAMLField carries exactly one of type, alias, enumeration or entity.
type YAMLField struct {
	Name          string `yaml:"name"`
	YAMLPrimitive `yaml:",inline"`

	Alias       string `yaml:"alias"`
	Enumeration string `yaml:"enumeration"`
	Entity      string `yaml:"entity"`
}

type YAMLPrimitive struct {
	Type string `yaml:"type"`

	Min *YAMLBound `yaml:"min"`
	Max *YAMLBound `yaml:"max"`

	MinLength *int    `yaml:"min_length"`
	MaxLength *int    `yaml:"max_length"`
	Regex     *string `yaml:"regex"`
}

func (p YAMLPrimitive) hasConstraints() bool {
	return p.Min != nil || p.Max != nil || p.MinLength != nil || p.MaxLength != nil || p.Regex != nil
}

// YAMLBound accepts either a bare number (inclusive) or
// {value: N, inclusive: bool}. The value is kept as a node so the mapper can
// tell integers from floats and report bad values with a path.
type YAMLBound struct {
	Value     *yaml.Node `yaml:"value"`
	Inclusive *bool      `yaml:"inclusive"`
}

func (b *YAMLBound) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.ScalarNode {
		b.Value = n
		return nil
	}
	type plain YAMLBound
	return n.Decode((*plain)(b))
}
