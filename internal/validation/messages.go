package validation

import "fmt"

var messages = map[string]map[string]string{
	"title": {
		"required": "product title is required",
		"min":      "minimum length of product title should be 3",
		"max":      "maximum length of product title should be 100",
	},
	"price": {
		"required": "product price is required",
		"gte":      "minimum price of product should be 25",
		"lte":      "maximum price of products should be 500",
	},
	"rating": {
		"required": "product rating is required",
	},
	"description": {
		"required": "product description is required",
	},
	"phone": {
		"required": "phone number is required",
	},
}

func message(field, rule string, value interface{}) string {
	switch {
	case field == "title" && rule == "oneof":
		return fmt.Sprintf("%v is not supported", value)
	case field == "phone" && rule == "phone":
		return fmt.Sprintf("%v is not a valid phone number!", value)
	}
	if msg, ok := messages[field][rule]; ok {
		return msg
	}
	return fmt.Sprintf("failed on the '%s' rule", rule)
}
