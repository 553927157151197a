package report

import (
	"sort"
	"strings"
	"unicode"

	apperrors "crop-planner/internal/common/errors"
)

// gateways maps carriers to their e-mail-to-SMS domain.
var gateways = map[string]string{
	"verizon":    "@vtext.com",
	"att":        "@txt.att.net",
	"tmobile":    "@tmomail.net",
	"sprint":     "@messaging.sprintpcs.com",
	"boost":      "@myboostmobile.com",
	"cricket":    "@mms.cricketwireless.net",
	"metro":      "@mymetropcs.com",
	"uscellular": "@email.uscc.net",

	"airtel":   "@airtelmail.com",
	"vodafone": "@vodafone-sms.com",
	"idea":     "@ideacellular.net",
	"bsnl":     "@bsnl.in",
	"mtnl":     "@mtnl.net.in",
	"jio":      "@sms.jio.com",
	"reliance": "@rcom.co.in",

	"generic1": "@txt.att.net",
	"generic2": "@vtext.com",
	"generic3": "@tmomail.net",
}

// Carriers lists the supported carriers in alphabetical order.
func Carriers() []string {
	out := make([]string, 0, len(gateways))
	for c := range gateways {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// GatewayAddress builds the e-mail address that relays to phone on carrier.
// Non-digit characters are stripped from phone.
func GatewayAddress(phone, carrier string) (string, error) {
	domain, ok := gateways[strings.ToLower(carrier)]
	if !ok {
		return "", apperrors.NewUnknownCarrierError(carrier)
	}
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, phone)
	if digits == "" {
		return "", apperrors.NewInvalidInputError("phoneNumber", "phone number has no digits")
	}
	return digits + domain, nil
}
