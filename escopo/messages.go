package escopo

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Message keys double as the English text.
const (
	msgBlockEntered      = "*BEGIN %s*"
	msgBlockExited       = "*END %s*"
	msgPrint             = "%s = %s in %s"
	msgUndeclared        = "%s not declared"
	msgInvalidAssignment = "%s : invalid assignment"
	msgInvalidLiteral    = "Error: invalid value or string."
	msgUnrecognized      = "unrecognized statement: %s"
	msgLinePrefix        = "Line %s: %s"
	msgMismatchedClose   = "%s does not close open block %s"
	msgCloseWithoutBlock = "%s without an open block"
	msgUnclosedBlock     = "block %s is never closed"
	msgStatementNoBlock  = "statement outside any block has no effect"
)

const defaultLocale = "pt"

var portuguese = map[string]string{
	msgBlockEntered:      "*INICIO %s*",
	msgBlockExited:       "*FIM %s*",
	msgPrint:             "%s = %s em %s",
	msgUndeclared:        "%s não declarado",
	msgInvalidAssignment: "%s : Atribuição inválida",
	msgInvalidLiteral:    "Error: Valor ou cadeia inválida.",
	msgUnrecognized:      "instrução não reconhecida: %s",
	msgLinePrefix:        "Linha %s: %s",
	msgMismatchedClose:   "%s não fecha o bloco aberto %s",
	msgCloseWithoutBlock: "%s sem bloco aberto",
	msgUnclosedBlock:     "bloco %s nunca é fechado",
	msgStatementNoBlock:  "instrução fora de qualquer bloco não tem efeito",
}

func init() {
	for key, msg := range portuguese {
		if err := message.SetString(language.Portuguese, key, msg); err != nil {
			panic(fmt.Sprintf("escopo: register message %q: %v", key, err))
		}
	}
}

// SupportedLocales lists the locales with a message catalog.
func SupportedLocales() []string {
	return []string{"pt", "en"}
}

type localizer struct {
	tag     language.Tag
	printer *message.Printer
}

func newLocalizer(locale string) (*localizer, error) {
	if locale == "" {
		locale = defaultLocale
	}
	parsed, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLocale, locale)
	}
	base, _ := parsed.Base()
	var tag language.Tag
	switch base.String() {
	case "pt":
		tag = language.Portuguese
	case "en":
		tag = language.English
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownLocale, locale)
	}
	return &localizer{tag: tag, printer: message.NewPrinter(tag)}, nil
}

func (l *localizer) sprintf(key string, args ...any) string {
	return l.printer.Sprintf(key, args...)
}
