package validators

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/nyaruka/phonenumbers"
)

// FieldResult é o retorno da validação de um campo do formulário de agendamento.
type FieldResult struct {
	IsValid   bool   `json:"isValid"`
	Error     string `json:"error,omitempty"`
	Formatted string `json:"formatted,omitempty"`
}

func invalid(msg string) FieldResult {
	return FieldResult{Error: msg}
}

var validate = validator.New()

var disposableDomains = map[string]bool{
	"10minutemail.com": true, "tempmail.org": true, "guerrillamail.com": true,
	"mailinator.com": true, "yopmail.com": true, "throwaway.email": true,
	"temp-mail.org": true, "sharklasers.com": true, "dispostable.com": true,
	"maildrop.cc": true, "mailnesia.com": true, "spam4.me": true,
}

// domínios digitados errado com frequência
var typoDomains = map[string]bool{
	"gmail.con": true, "gmail.co": true, "hotmail.con": true,
	"hotmail.co": true, "outlook.con": true, "yahoo.con": true,
}

var testEmails = map[string]bool{
	"test@test.com": true, "test@gmail.com": true, "fake@fake.com": true,
}

var testNames = map[string]bool{
	"test": true, "teste": true, "fake": true, "admin": true, "user": true, "guest": true,
}

func CheckName(name string) FieldResult {
	name = strings.TrimSpace(name)

	n := utf8.RuneCountInString(name)
	switch {
	case n < 2:
		return invalid("Nome deve ter ao menos 2 caracteres.")
	case n > 80:
		return invalid("Nome muito longo.")
	}

	for _, r := range name {
		if !unicode.IsLetter(r) && r != ' ' && r != '\'' && r != '-' && r != '.' {
			return invalid("Nome deve conter apenas letras.")
		}
	}
	if hasRun([]rune(strings.ToLower(name)), 4) {
		return invalid("Nome suspeito.")
	}
	if testNames[strings.ToLower(name)] {
		return invalid("Nome de teste não é aceito.")
	}

	return FieldResult{IsValid: true, Formatted: name}
}

func CheckEmail(email string) FieldResult {
	email = NormalizeEmail(email)

	if err := validate.Var(email, "required,email"); err != nil {
		return invalid("E-mail inválido.")
	}

	domain := email[strings.LastIndex(email, "@")+1:]
	switch {
	case disposableDomains[domain]:
		return invalid("E-mails temporários não são aceitos.")
	case typoDomains[domain]:
		return invalid("Domínio do e-mail parece incorreto.")
	case testEmails[email]:
		return invalid("E-mail de teste não é aceito.")
	}

	return FieldResult{IsValid: true, Formatted: email}
}

// CheckPhone exige um número válido para a região (não só parseável).
func CheckPhone(phone string) FieldResult {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return invalid("Telefone é obrigatório.")
	}

	var digits []rune
	for _, r := range phone {
		if unicode.IsDigit(r) {
			digits = append(digits, r)
		}
	}
	if hasRun(digits, 6) {
		return invalid("Telefone suspeito.")
	}

	for _, region := range phoneRegions {
		num, err := phonenumbers.Parse(phone, region)
		if err == nil && phonenumbers.IsValidNumber(num) {
			return FieldResult{IsValid: true, Formatted: phonenumbers.Format(num, phonenumbers.E164)}
		}
	}
	return invalid("Telefone inválido.")
}

// hasRun diz se algum caractere se repete n vezes seguidas.
func hasRun(rs []rune, n int) bool {
	run := 1
	for i := 1; i < len(rs); i++ {
		if rs[i] == rs[i-1] {
			run++
			if run >= n {
				return true
			}
			continue
		}
		run = 1
	}
	return false
}
