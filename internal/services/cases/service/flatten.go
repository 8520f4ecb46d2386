package service

import (
	"caserelay/internal/adapters/notion"
)

// flatten reduces typed property values to plain JSON values
// types without a plain form are passed through as the upstream sent them
func flatten(props map[string]notion.PropertyValue) map[string]any {
	out := make(map[string]any, len(props))
	for name, p := range props {
		out[name] = flattenOne(p)
	}
	return out
}

func flattenOne(p notion.PropertyValue) any {
	switch p.Type {
	case "title":
		return notion.PlainText(p.Title)
	case "rich_text":
		return notion.PlainText(p.RichText)
	case "select":
		return optionName(p.Select)
	case "status":
		return optionName(p.Status)
	case "multi_select":
		names := make([]string, 0, len(p.MultiSelect))
		for _, o := range p.MultiSelect {
			names = append(names, o.Name)
		}
		return names
	case "date":
		if p.Date == nil {
			return nil
		}
		return p.Date.Start
	case "number":
		if p.Number == nil {
			return nil
		}
		return *p.Number
	case "checkbox":
		return p.Checkbox != nil && *p.Checkbox
	case "url":
		return strOrNil(p.URL)
	case "email":
		return strOrNil(p.Email)
	case "phone_number":
		return strOrNil(p.PhoneNumber)
	default:
		if len(p.Raw) == 0 {
			return nil
		}
		return p.Raw
	}
}

func optionName(o *notion.Option) any {
	if o == nil {
		return nil
	}
	return o.Name
}

func strOrNil(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
