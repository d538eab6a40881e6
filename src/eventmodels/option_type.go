package eventmodels

import "fmt"

type OptionType string

func (o OptionType) Validate() error {
	if o != Call && o != Put {
		return fmt.Errorf("OptionType: Validate: invalid option type: %s", o)
	}

	return nil
}

// Code is the single character used for the option type inside a packed ticker.
func (o OptionType) Code() string {
	switch o {
	case Call:
		return "C"
	case Put:
		return "P"
	default:
		return ""
	}
}

func NewOptionTypeFromCode(code string) (OptionType, error) {
	switch code {
	case "C", "c":
		return Call, nil
	case "P", "p":
		return Put, nil
	default:
		return "", fmt.Errorf("NewOptionTypeFromCode: invalid option type code: %q", code)
	}
}

const (
	Call OptionType = "call"
	Put  OptionType = "put"
)
