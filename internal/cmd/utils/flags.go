package cmdUtils

import (
	"fmt"
	"strconv"

	"github.com/spf13/pflag"
)

// Octal permission bits given on the command line, such as `0750`.
// Parse errors are reported while cobra parses flags.
type octalModeValue struct {
	dest *string
}

var _ pflag.Value = (*octalModeValue)(nil)

func NewOctalModeValue(dest *string) pflag.Value {
	return &octalModeValue{dest: dest}
}

func (v *octalModeValue) String() string {
	return *v.dest
}

func (v *octalModeValue) Set(s string) error {
	mode, err := strconv.ParseUint(s, 8, 32)
	if err != nil {
		return fmt.Errorf("'%s' is not an octal number", s)
	}
	if mode&^0o777 != 0 {
		return fmt.Errorf("'%s' has bits outside of 0777", s)
	}
	*v.dest = s
	return nil
}

func (v *octalModeValue) Type() string {
	return "mode"
}

func AddOctalModeFlag(flags *pflag.FlagSet, dest *string, name string, shorthand string, desc string) {
	flags.VarP(NewOctalModeValue(dest), name, shorthand, desc)
}
