package validator

var tagMap = map[string]string{
	"required": "required",
	"cpf":      "invalid_cpf",
	"datetime": "invalid_date",
	"email":    "invalid_email",
	"uuid":     "invalid_uuid",
	"url":      "invalid_url",
	"http_url": "invalid_http_url",
	"max":      "too_long",
	"min":      "too_short",
	"len":      "invalid_length",
	"oneof":    "invalid_choice",
	"numeric":  "only_numbers_allowed",
	"alphanum": "only_letters_and_digits_allowed",
}
