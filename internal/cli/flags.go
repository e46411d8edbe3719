package cli

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
)

// dateValue is a pflag.Value for optional YYYY-MM-DD flags. The zero value
// means "not set".
type dateValue struct {
	t   *time.Time
	set bool
}

var _ pflag.Value = (*dateValue)(nil)

func (d *dateValue) String() string {
	if !d.set || d.t == nil {
		return ""
	}
	return d.t.Format("2006-01-02")
}

func (d *dateValue) Set(s string) error {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", s)
	}
	*d.t = t
	d.set = true
	return nil
}

func (d *dateValue) Type() string {
	return "date"
}

// dateVar registers an optional date flag bound to target.
func dateVar(fs *pflag.FlagSet, target *time.Time, name, usage string) *dateValue {
	v := &dateValue{t: target}
	fs.Var(v, name, usage)
	return v
}
