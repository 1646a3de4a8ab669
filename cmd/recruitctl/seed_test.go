package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	testdb "hr-pipeline-backend/lib/utils/test-db"
	"hr-pipeline-backend/models"
	dbmodels "hr-pipeline-backend/models/db"
)

const seedYaml = `
users:
  - username: rh
    password: secret123
    first_name: Claire
    last_name: Dubois
    email: claire.dubois@example.com
    role: RH
  - username: manager
    password: secret123
    first_name: Marc
    last_name: Petit
    role: Manager
hiring_requests:
  - requester: manager
    recruiter: rh
    job_title: Opérateur de production
    service: Production
    opened_positions: 2
    hiring_cost: 800
`

func TestSeed(t *testing.T) {
	ctx := context.Background()

	t.Run(`parse and apply`, func(t *testing.T) {
		conn := testdb.New(t)
		seed, err := ParseSeed([]byte(seedYaml))
		require.NoError(t, err)
		require.Len(t, seed.Users, 2)

		result, err := ApplySeed(ctx, conn, *seed)
		require.NoError(t, err)
		require.Equal(t, 2, result.UsersCreated)
		require.Equal(t, 1, result.HiringRequestsCreated)

		rec := dbmodels.HiringRequest{}
		require.NoError(t, conn.First(&rec).Error)
		require.Equal(t, models.HRStatusPendingValidation, rec.Status)
		require.NotNil(t, rec.RecruiterID)

		result, err = ApplySeed(ctx, conn, Seed{Users: seed.Users})
		require.NoError(t, err)
		require.Equal(t, 0, result.UsersCreated)
		require.Equal(t, 2, result.UsersSkipped)
	})

	t.Run(`unknown role`, func(t *testing.T) {
		_, err := ParseSeed([]byte("users:\n  - username: x\n    role: Boss\n"))
		require.Error(t, err)
	})

	t.Run(`unknown requester`, func(t *testing.T) {
		conn := testdb.New(t)
		_, err := ApplySeed(ctx, conn, Seed{HiringRequests: []SeedHiringRequest{{
			Requester: "ghost",
			JobTitle:  "Soudeur",
			Service:   "Production",
		}}})
		require.Error(t, err)
	})
}
