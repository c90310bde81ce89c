package scheduler

import (
	"time"

	"classbook/pkg/model"
)

// Score scaling. The time term is submission epoch milliseconds divided by
// timeScale, so it only orders requests whose role and type weights tie.
const (
	roleScale = 100
	typeScale = 10
	timeScale = 1_000_000
)

var roleWeights = map[model.Role]float64{
	model.RoleSenior:  1,
	model.RoleJunior:  2,
	model.RoleStudent: 3,
}

var typeWeights = map[model.ReservationType]float64{
	model.TypeExam:       1,
	model.TypeExtraClass: 2,
	model.TypeEvent:      3,
}

func RoleWeight(role model.Role) (float64, bool) {
	w, ok := roleWeights[role]
	return w, ok
}

func TypeWeight(t model.ReservationType) (float64, bool) {
	w, ok := typeWeights[t]
	return w, ok
}

// Priority scores a request; lower scores are served first. Role and type
// must come from the closed enumerations, unknown values weigh zero.
func Priority(role model.Role, t model.ReservationType, submittedAt time.Time) float64 {
	rw, _ := RoleWeight(role)
	tw, _ := TypeWeight(t)
	return rw*roleScale + tw*typeScale + float64(submittedAt.UnixMilli())/timeScale
}
