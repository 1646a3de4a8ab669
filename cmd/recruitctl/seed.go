package main

import (
	"context"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	hiringrequesthandler "hr-pipeline-backend/lib/hiring-request"
	notificationhandler "hr-pipeline-backend/lib/notification"
	usershandler "hr-pipeline-backend/lib/users"
	usersstore "hr-pipeline-backend/lib/users/store"
	"hr-pipeline-backend/models"
	hiringrequestapimodels "hr-pipeline-backend/models/api/hiring-request"
	userapimodels "hr-pipeline-backend/models/api/user"
)

type SeedUser struct {
	Username  string          `yaml:"username"`
	Password  string          `yaml:"password"`
	FirstName string          `yaml:"first_name"`
	LastName  string          `yaml:"last_name"`
	Email     string          `yaml:"email"`
	Role      models.UserRole `yaml:"role"`
}

type SeedHiringRequest struct {
	Requester       string  `yaml:"requester"`
	Recruiter       string  `yaml:"recruiter"`
	JobTitle        string  `yaml:"job_title"`
	Service         string  `yaml:"service"`
	Description     string  `yaml:"description"`
	OpenedPositions int     `yaml:"opened_positions"`
	HiringCost      float64 `yaml:"hiring_cost"`
}

type Seed struct {
	Users          []SeedUser          `yaml:"users"`
	HiringRequests []SeedHiringRequest `yaml:"hiring_requests"`
}

type SeedResult struct {
	UsersCreated          int
	UsersSkipped          int
	HiringRequestsCreated int
}

func ParseSeed(data []byte) (*Seed, error) {
	seed := new(Seed)
	if err := yaml.Unmarshal(data, seed); err != nil {
		return nil, errors.Wrap(err, "fichier yaml invalide")
	}
	for n, u := range seed.Users {
		if err := u.Role.Validate(); err != nil {
			return nil, errors.Wrapf(err, "utilisateur #%d", n+1)
		}
	}
	return seed, nil
}

// ApplySeed существующие логины пропускаются, заявки создаются всегда
func ApplySeed(ctx context.Context, conn *gorm.DB, seed Seed) (result SeedResult, err error) {
	users := usershandler.NewInstance(conn)
	store := usersstore.NewInstance(conn)
	for _, u := range seed.Users {
		exist, err := store.FindByUsername(u.Username)
		if err != nil {
			return result, err
		}
		if exist != nil {
			result.UsersSkipped++
			continue
		}
		_, err = users.Create(userapimodels.UserCreateData{
			UserData: userapimodels.UserData{
				Username:  u.Username,
				FirstName: u.FirstName,
				LastName:  u.LastName,
				Email:     u.Email,
				Role:      u.Role,
			},
			Password: u.Password,
		})
		if err != nil {
			return result, errors.Wrapf(err, "utilisateur %s", u.Username)
		}
		result.UsersCreated++
	}

	requests := hiringrequesthandler.NewInstance(conn, hiringrequesthandler.Options{
		Notifier: notificationhandler.NewInstance(conn, notificationhandler.Options{}),
	})
	for _, r := range seed.HiringRequests {
		requester, err := store.FindByUsername(r.Requester)
		if err != nil {
			return result, err
		}
		if requester == nil {
			return result, errors.Errorf("demandeur %q introuvable", r.Requester)
		}
		data := hiringrequestapimodels.HiringRequestData{
			JobTitle:        r.JobTitle,
			Service:         r.Service,
			Description:     r.Description,
			OpenedPositions: r.OpenedPositions,
			HiringCost:      r.HiringCost,
		}
		if r.Recruiter != "" {
			recruiter, err := store.FindByUsername(r.Recruiter)
			if err != nil {
				return result, err
			}
			if recruiter == nil {
				return result, errors.Errorf("recruteur %q introuvable", r.Recruiter)
			}
			data.RecruiterID = &recruiter.ID
		}
		if err = data.Validate(); err != nil {
			return result, errors.Wrapf(err, "demande %q", r.JobTitle)
		}
		if _, err = requests.Create(requester.ToActor(), data); err != nil {
			return result, errors.Wrapf(err, "demande %q", r.JobTitle)
		}
		result.HiringRequestsCreated++
	}
	return result, nil
}
