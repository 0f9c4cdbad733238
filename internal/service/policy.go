package service

// Role is the access level of an operator id.
type Role int

const (
	RoleUnauthorized Role = iota
	RoleOperator
	RoleAdministrator
)

func (r Role) String() string {
	switch r {
	case RoleOperator:
		return "operator"
	case RoleAdministrator:
		return "administrator"
	default:
		return "unauthorized"
	}
}

// IsOperator is true for operators and administrators alike.
func (r Role) IsOperator() bool { return r >= RoleOperator }

func (r Role) IsAdmin() bool { return r == RoleAdministrator }

// Policy classifies operator ids against the static membership sets loaded
// at startup. The sets may overlap; admin membership wins.
type Policy struct {
	admins    map[int64]struct{}
	operators map[int64]struct{}
}

func NewPolicy(admins, operators []int64) *Policy {
	p := &Policy{
		admins:    make(map[int64]struct{}, len(admins)),
		operators: make(map[int64]struct{}, len(operators)),
	}
	for _, id := range admins {
		p.admins[id] = struct{}{}
	}
	for _, id := range operators {
		p.operators[id] = struct{}{}
	}
	return p
}

func (p *Policy) Classify(operatorID int64) Role {
	if _, ok := p.admins[operatorID]; ok {
		return RoleAdministrator
	}
	if _, ok := p.operators[operatorID]; ok {
		return RoleOperator
	}
	return RoleUnauthorized
}
