package constants

import "fmt"

// Role yang dikenal di klaim JWT
const (
	RoleStudent  = "student"
	RoleOperator = "operator"
	RoleAdmin    = "admin"
)

// Template pesan error role
const (
	ErrOnlyOperatorsCanAccess = "❌ Hanya operator atau admin yang boleh mengakses fitur %s."
)

func RoleErrorOperator(feature string) string {
	return fmt.Sprintf(ErrOnlyOperatorsCanAccess, feature)
}

// OperatorAndAbove: role yang boleh masuk grup /api/a
var OperatorAndAbove = []string{
	RoleOperator,
	RoleAdmin,
}
