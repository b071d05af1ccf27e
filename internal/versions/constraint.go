package versions

import (
	"github.com/Masterminds/semver/v3"

	"git.home.luguber.info/inful/docversions/internal/errors"
)

// Constraint narrows the listed versions with a semver range such as
// ">= 1.0, < 3". A nil Constraint allows everything.
type Constraint struct {
	raw         string
	constraints *semver.Constraints
}

// ParseConstraint compiles expr. An empty expr yields a nil Constraint.
func ParseConstraint(expr string) (*Constraint, error) {
	if expr == "" {
		return nil, nil
	}
	c, err := semver.NewConstraint(expr)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryValidation, errors.SeverityFatal, "invalid version constraint").
			WithContext("constraint", expr)
	}
	return &Constraint{raw: expr, constraints: c}, nil
}

// Allows reports whether name may be listed. Names that are not semver
// versions ("latest", "main") are never filtered.
func (c *Constraint) Allows(name string) bool {
	if c == nil {
		return true
	}
	v, err := semver.NewVersion(name)
	if err != nil {
		return true
	}
	return c.constraints.Check(v)
}

// String returns the constraint expression.
func (c *Constraint) String() string {
	if c == nil {
		return ""
	}
	return c.raw
}
