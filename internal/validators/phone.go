package validators

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// Regiões tentadas quando o número não vem com +DDI.
var phoneRegions = []string{"BR", "PT", "US"}

// NormalizePhone devolve o telefone em E.164 ou "" se não for um número.
func NormalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return ""
	}

	for _, region := range phoneRegions {
		num, err := phonenumbers.Parse(phone, region)
		if err == nil {
			return phonenumbers.Format(num, phonenumbers.E164)
		}
	}
	return ""
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
