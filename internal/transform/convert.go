package transform

import (
	"encoding/json"
	"strings"

	"gopkg.in/yaml.v3"

	apperrors "github.com/jsonstudio/jsonstudio/internal/errors"
	"github.com/jsonstudio/jsonstudio/internal/models"
	"github.com/jsonstudio/jsonstudio/internal/validator"
)

// ToYAML converts a valid JSON document to YAML, preserving key order by
// building yaml.Node trees instead of maps. Empty input yields empty output;
// invalid input is an error.
func ToYAML(input string) (string, error) {
	result := validator.Validate(input)
	if !result.Valid {
		return "", apperrors.NewConvertError("cannot convert invalid JSON to YAML", apperrors.ErrInvalidJSON)
	}
	if result.Parsed == nil {
		return "", nil
	}
	node := yamlNode(result.Parsed)
	out, err := yaml.Marshal(node)
	if err != nil {
		return "", apperrors.NewConvertError("failed to serialize YAML", err)
	}
	return string(out), nil
}

// FromYAML converts a YAML document to indented JSON. Mapping key order is
// preserved via the yaml.Node representation. Empty input yields empty
// output.
func FromYAML(input string, indent int) (string, error) {
	if strings.TrimSpace(input) == "" {
		return "", nil
	}
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(input), &doc); err != nil {
		return "", apperrors.NewConvertError("cannot parse YAML input", err)
	}
	value, err := jsonValue(&doc)
	if err != nil {
		return "", err
	}
	return Encode(value, indent)
}

func yamlNode(v models.Value) *yaml.Node {
	switch t := v.(type) {
	case *models.Object:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, m := range t.Members {
			key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: m.Key}
			node.Content = append(node.Content, key, yamlNode(m.Value))
		}
		return node
	case models.Array:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, e := range t {
			node.Content = append(node.Content, yamlNode(e))
		}
		return node
	case string:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: t}
	case json.Number:
		tag := "!!int"
		if strings.ContainsAny(t.String(), ".eE") {
			tag = "!!float"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: t.String()}
	case bool:
		if t {
			return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: "true"}
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: "false"}
	default: // nil
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
}

func jsonValue(n *yaml.Node) (models.Value, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return jsonValue(n.Content[0])
	case yaml.MappingNode:
		obj := &models.Object{}
		for i := 0; i+1 < len(n.Content); i += 2 {
			val, err := jsonValue(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			obj.Members = append(obj.Members, models.Member{Key: n.Content[i].Value, Value: val})
		}
		return obj, nil
	case yaml.SequenceNode:
		arr := models.Array{}
		for _, c := range n.Content {
			val, err := jsonValue(c)
			if err != nil {
				return nil, err
			}
			arr = append(arr, val)
		}
		return arr, nil
	case yaml.AliasNode:
		return jsonValue(n.Alias)
	case yaml.ScalarNode:
		switch n.Tag {
		case "!!null":
			return nil, nil
		case "!!bool":
			return strings.EqualFold(n.Value, "true"), nil
		case "!!int", "!!float":
			return json.Number(n.Value), nil
		default:
			return n.Value, nil
		}
	default:
		return nil, apperrors.NewConvertError("unsupported YAML node", apperrors.ErrInvalidYAML)
	}
}
