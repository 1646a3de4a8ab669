package rbac

import (
	"testing"

	"github.com/stretchr/testify/require"
	"hr-pipeline-backend/models"
)

func TestRbac(t *testing.T) {
	t.Run(`pathToRegex check`, func(t *testing.T) {
		path, method, err := parseSwaggerPattern("/api/v1/candidates/{id}/offer [post]")
		require.Nil(t, err)
		require.Equal(t, POST, method)
		r1 := pathToRegex(path)

		require.True(t, r1.MatchString("/api/v1/candidates/15/offer"))
		require.False(t, r1.MatchString("/api/v1/candidates/offer"))
		require.False(t, r1.MatchString("/api/v1/candidates/15/offer/pdf"))

		path, method, err = parseSwaggerPattern("/api/v1/hiring_requests/{id}/validations/{step} [get]")
		require.Nil(t, err)
		require.Equal(t, GET, method)
		r2 := pathToRegex(path)
		require.True(t, r2.MatchString("/api/v1/hiring_requests/7/validations/RH"))
		require.False(t, r2.MatchString("/api/v1/hiring_requests/7/validations"))
	})

	t.Run(`pattern without method`, func(t *testing.T) {
		_, _, err := parseSwaggerPattern("/api/v1/candidates")
		require.NotNil(t, err)
	})

	t.Run(`rules by role`, func(t *testing.T) {
		provider := NewInstance()

		handler, found := provider.GetRuleFunc("DELETE", "/api/v1/candidates/12/")
		require.True(t, found)
		require.True(t, handler("1", models.RHRole, "/api/v1/candidates/12"))
		require.False(t, handler("1", models.CORole, "/api/v1/candidates/12"))

		handler, found = provider.GetRuleFunc("put", "/api/v1/candidates/12/opinion")
		require.True(t, found)
		require.True(t, handler("1", models.ManagerRole, ""))
		require.False(t, handler("1", models.CORole, ""))

		handler, found = provider.GetRuleFunc("POST", "/api/v1/candidates/list")
		require.True(t, found)
		require.True(t, handler("1", models.CORole, ""))

		_, found = provider.GetRuleFunc("GET", "/api/v1/notifications/unread_count")
		require.False(t, found)
	})

	t.Run(`permissions for client`, func(t *testing.T) {
		provider := NewInstance()
		co := provider.GetPermissions(models.CORole)
		require.NotContains(t, co[models.CandidateModule], models.OpinionPermission)
		require.Contains(t, co[models.CandidateModule], models.ViewPermission)
		rh := provider.GetPermissions(models.RHRole)
		require.Contains(t, rh[models.OfferModule], models.FlowPermission)
	})

	t.Run(`duplicate rule rejected`, func(t *testing.T) {
		provider := NewInstance()
		err := provider.RegisterRule(models.CandidateModule, models.EditPermission, RHRoleSet, "/api/v1/candidates/{id} [put]", nil)
		require.NotNil(t, err)
		err = provider.RegisterRule(models.CandidateModule, models.CreatePermission, RHRoleSet, "/api/v1/candidates [post]", nil)
		require.NotNil(t, err)
	})

	t.Run(`permissions view sorted`, func(t *testing.T) {
		provider := NewInstance()
		view := provider.GetPermissionsView(models.RHRole)
		require.NotEmpty(t, view)
		for n := 1; n < len(view); n++ {
			require.Less(t, string(view[n-1].Module), string(view[n].Module))
		}
		require.True(t, provider.Can(models.RHRole, models.DashboardModule, models.ViewPermission))
		require.False(t, provider.Can(models.CORole, models.CandidateModule, models.OpinionPermission))
	})
}
