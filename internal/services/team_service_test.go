package services

import (
	"context"
	"testing"

	"github.com/Valentin6743/LS/internal/apperr"
	"github.com/Valentin6743/LS/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTeamCreateAddsOwnerMembership(t *testing.T) {
	s, _ := newTestSet(t)
	ctx := context.Background()
	owner := uuid.New()

	team, err := s.Teams.Create(ctx, CreateTeamRequest{OwnerID: owner, Name: "Climbing"})
	require.NoError(t, err)

	members, err := s.Teams.Members(ctx, team.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, owner, members[0].UserID)
	assert.Equal(t, models.RoleOwner, members[0].Role)

	_, err = s.Teams.Create(ctx, CreateTeamRequest{OwnerID: owner})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestTeamMembers(t *testing.T) {
	s, _ := newTestSet(t)
	ctx := context.Background()
	owner, member := uuid.New(), uuid.New()

	team, err := s.Teams.Create(ctx, CreateTeamRequest{OwnerID: owner, Name: "Climbing"})
	require.NoError(t, err)

	m, err := s.Teams.AddMember(ctx, team.ID, member, nil)
	require.NoError(t, err)
	assert.Equal(t, models.RoleMember, m.Role)

	_, err = s.Teams.AddMember(ctx, team.ID, member, nil)
	assert.ErrorIs(t, err, apperr.ErrStore, "duplicate membership")

	_, err = s.Teams.AddMember(ctx, team.ID, uuid.New(), ptr(models.TeamRole("guest")))
	assert.ErrorIs(t, err, apperr.ErrValidation)

	m, err = s.Teams.UpdateMember(ctx, m.ID, models.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, m.Role)

	teams, err := s.Teams.UserTeams(ctx, member)
	require.NoError(t, err)
	require.Len(t, teams, 1)
	assert.Equal(t, team.ID, teams[0].ID)

	require.NoError(t, s.Teams.RemoveMember(ctx, team.ID, member))
	members, err := s.Teams.Members(ctx, team.ID)
	require.NoError(t, err)
	assert.Len(t, members, 1)

	teams, err = s.Teams.UserTeams(ctx, member)
	require.NoError(t, err)
	assert.Empty(t, teams)
}

func TestTeamUpdateAndDelete(t *testing.T) {
	s, _ := newTestSet(t)
	ctx := context.Background()
	owner := uuid.New()

	team, err := s.Teams.Create(ctx, CreateTeamRequest{OwnerID: owner, Name: "Climbing"})
	require.NoError(t, err)

	team, err = s.Teams.Update(ctx, team.ID, UpdateTeamRequest{Description: ptr("Sundays")})
	require.NoError(t, err)
	assert.Equal(t, "Climbing", team.Name)
	assert.Equal(t, "Sundays", *team.Description)

	require.NoError(t, s.Teams.Delete(ctx, team.ID))
	list, err := s.Teams.List(ctx, TeamFilter{OwnerID: &owner})
	require.NoError(t, err)
	assert.Empty(t, list)

	teams, err := s.Teams.UserTeams(ctx, owner)
	require.NoError(t, err)
	assert.Empty(t, teams, "deleted teams are hidden from members")

	_, err = s.Teams.Update(ctx, team.ID, UpdateTeamRequest{Name: ptr("x")})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
