package middleware

import (
	"net/http"
	"sync"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	fileadapter "github.com/casbin/casbin/v2/persist/file-adapter"
	"github.com/casbin/casbin/v2/util"
	"github.com/labstack/echo/v4"

	"CampusPlanner/internal/identity"
)

var (
	enforcer     *casbin.Enforcer
	enforcerOnce sync.Once
	enforcerErr  error
)

const rbacModel = `[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act, eft

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && keyMatch(r.obj, p.obj) && r.act == p.act`

// InitCasbinEnforcer initializes the Casbin enforcer singleton with the
// model defined in code and the policy from rbac_policy.csv.
func InitCasbinEnforcer() (*casbin.Enforcer, error) {
	enforcerOnce.Do(func() {
		m, err := model.NewModelFromString(rbacModel)
		if err != nil {
			enforcerErr = err
			return
		}
		adapter := fileadapter.NewAdapter("rbac_policy.csv")
		enforcer, enforcerErr = casbin.NewEnforcer(m, adapter)
		if enforcerErr != nil {
			return
		}
		enforcer.AddFunction("keyMatch", util.KeyMatchFunc)
	})
	return enforcer, enforcerErr
}

// CasbinMiddleware enforces RBAC using Casbin for each request.
func CasbinMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := c.Get("user").(*identity.JWTClaims)
		if !ok || claims == nil {
			return c.JSON(http.StatusForbidden, map[string]string{"error": "Unauthorized: missing user claims"})
		}
		enf, err := InitCasbinEnforcer()
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "RBAC system error"})
		}
		allowed, err := enf.Enforce(claims.Role, c.Request().URL.Path, c.Request().Method)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "RBAC system error"})
		}
		if !allowed {
			return c.JSON(http.StatusForbidden, map[string]string{"error": "Forbidden: insufficient permissions"})
		}
		return next(c)
	}
}
