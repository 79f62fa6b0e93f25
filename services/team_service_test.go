package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"hackmate/database"
	"hackmate/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// a second pooled connection would open a second empty in-memory DB
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.RunMigrations(db))
	return db
}

func newTestService(t *testing.T, db *gorm.DB) *TeamService {
	t.Helper()
	return NewTeamService(db, NewDeterministicMatcher(), NewNotificationService(db))
}

func seedHackathon(t *testing.T, db *gorm.DB, maxTeamSize int) *models.Hackathon {
	t.Helper()

	h := &models.Hackathon{
		Name:                 "HackTheNorth",
		Description:          "48 hours of building",
		MaxTeamSize:          maxTeamSize,
		RegistrationDeadline: time.Now().Add(7 * 24 * time.Hour),
		StartDate:            time.Now().Add(14 * 24 * time.Hour),
		EndDate:              time.Now().Add(16 * 24 * time.Hour),
		IsActive:             true,
	}
	require.NoError(t, db.Create(h).Error)
	return h
}

func seedUser(t *testing.T, db *gorm.DB, username string, skills ...string) *models.User {
	t.Helper()

	email := username + "@example.com"
	u := &models.User{
		Username: username,
		Email:    &email,
		Password: "irrelevant",
		Skills:   skills,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func seedTeam(t *testing.T, svc *TeamService, leader *models.User, hackathonID string, maxMembers int) *models.Team {
	t.Helper()

	team, err := svc.CreateTeam(context.Background(), leader, CreateTeamInput{
		Name:           "Team " + leader.Username,
		Description:    "a test team",
		HackathonID:    hackathonID,
		RequiredSkills: []string{"go", "react"},
		MaxMembers:     maxMembers,
	})
	require.NoError(t, err)
	return team
}

func memberCount(t *testing.T, db *gorm.DB, teamID string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.TeamMember{}).Where("team_id = ?", teamID).Count(&n).Error)
	return n
}

func reloadTeam(t *testing.T, db *gorm.DB, teamID string) *models.Team {
	t.Helper()
	var team models.Team
	require.NoError(t, db.Where("id = ?", teamID).First(&team).Error)
	return &team
}

// ================== CREATE ==================

func TestCreateTeam(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	hackathon := seedHackathon(t, db, 5)
	leader := seedUser(t, db, "alice", "go", "postgres")

	team, err := svc.CreateTeam(ctx, leader, CreateTeamInput{
		Name:           "Gophers",
		Description:    "we ship",
		HackathonID:    hackathon.ID,
		RequiredSkills: []string{"go"},
		MaxMembers:     4,
	})
	require.NoError(t, err)

	require.Equal(t, leader.ID, team.TeamLeadID)
	require.Equal(t, 1, team.CurrentMembers)
	require.Len(t, team.InviteCode, inviteCodeLength)
	require.Equal(t, models.TeamStatusActive, team.TeamStatus)

	// the creator is on the roster as leader
	require.Len(t, team.Members, 1)
	require.Equal(t, models.TeamRoleLeader, team.Members[0].Role)
	require.Equal(t, leader.ID, team.Members[0].UserID)
	require.EqualValues(t, 1, memberCount(t, db, team.ID))
}

func TestCreateTeamValidation(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	hackathon := seedHackathon(t, db, 4)
	leader := seedUser(t, db, "alice")

	tests := []struct {
		name string
		in   CreateTeamInput
		want error
	}{
		{
			name: "missing name",
			in:   CreateTeamInput{Description: "d", HackathonID: hackathon.ID, MaxMembers: 3},
			want: models.ErrValidation,
		},
		{
			name: "missing description",
			in:   CreateTeamInput{Name: "n", HackathonID: hackathon.ID, MaxMembers: 3},
			want: models.ErrValidation,
		},
		{
			name: "capacity below two",
			in:   CreateTeamInput{Name: "n", Description: "d", HackathonID: hackathon.ID, MaxMembers: 1},
			want: models.ErrValidation,
		},
		{
			name: "capacity above hackathon team size",
			in:   CreateTeamInput{Name: "n", Description: "d", HackathonID: hackathon.ID, MaxMembers: 9},
			want: models.ErrValidation,
		},
		{
			name: "unknown hackathon",
			in:   CreateTeamInput{Name: "n", Description: "d", HackathonID: "b5e7f6de-0000-0000-0000-000000000000", MaxMembers: 3},
			want: models.ErrHackathonNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateTeam(ctx, leader, tt.in)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestInviteCodesUnique(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	seen := make(map[string]struct{}, 2000)
	for i := 0; i < 2000; i++ {
		code, err := svc.generateUniqueInviteCode(ctx)
		require.NoError(t, err)
		require.Len(t, code, inviteCodeLength)
		for _, r := range code {
			require.Contains(t, inviteCodeAlphabet, string(r))
		}
		_, dup := seen[code]
		require.False(t, dup, "duplicate invite code %s", code)
		seen[code] = struct{}{}
	}
}

// ================== INVITE CODE JOIN ==================

func TestJoinWithCode(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	hackathon := seedHackathon(t, db, 5)
	leader := seedUser(t, db, "alice", "go")
	joiner := seedUser(t, db, "bob", "react")
	team := seedTeam(t, svc, leader, hackathon.ID, 3)

	got, err := svc.JoinWithCode(ctx, joiner, team.InviteCode)
	require.NoError(t, err)
	require.Equal(t, 2, got.CurrentMembers)
	require.EqualValues(t, 2, memberCount(t, db, team.ID))

	// case-insensitive lookup
	third := seedUser(t, db, "carol")
	_, err = svc.JoinWithCode(ctx, third, "  "+team.InviteCode+" ")
	require.NoError(t, err)
}

func TestJoinWithCodeInvalid(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	joiner := seedUser(t, db, "bob")

	_, err := svc.JoinWithCode(ctx, joiner, "NOPE1234")
	require.ErrorIs(t, err, models.ErrInvalidInviteCode)

	_, err = svc.JoinWithCode(ctx, joiner, "")
	require.ErrorIs(t, err, models.ErrInvalidInviteCode)
}

func TestJoinWithCodeAlreadyMember(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	hackathon := seedHackathon(t, db, 5)
	leader := seedUser(t, db, "alice")
	joiner := seedUser(t, db, "bob")
	team := seedTeam(t, svc, leader, hackathon.ID, 3)

	_, err := svc.JoinWithCode(ctx, joiner, team.InviteCode)
	require.NoError(t, err)

	_, err = svc.JoinWithCode(ctx, joiner, team.InviteCode)
	require.ErrorIs(t, err, models.ErrAlreadyMember)
	require.EqualValues(t, 2, memberCount(t, db, team.ID))

	// the leader is a member too
	_, err = svc.JoinWithCode(ctx, leader, team.InviteCode)
	require.ErrorIs(t, err, models.ErrAlreadyMember)
}

func TestJoinWithCodeFullTeam(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	hackathon := seedHackathon(t, db, 5)
	leader := seedUser(t, db, "alice")
	team := seedTeam(t, svc, leader, hackathon.ID, 2)

	_, err := svc.JoinWithCode(ctx, seedUser(t, db, "bob"), team.InviteCode)
	require.NoError(t, err)

	_, err = svc.JoinWithCode(ctx, seedUser(t, db, "carol"), team.InviteCode)
	require.ErrorIs(t, err, models.ErrTeamFull)

	// a failed join mutates nothing
	require.EqualValues(t, 2, memberCount(t, db, team.ID))
	require.Equal(t, 2, reloadTeam(t, db, team.ID).CurrentMembers)
}

func TestJoinWithCodeResolvesPendingRequest(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	hackathon := seedHackathon(t, db, 5)
	leader := seedUser(t, db, "alice")
	joiner := seedUser(t, db, "bob")
	team := seedTeam(t, svc, leader, hackathon.ID, 3)

	request, err := svc.RequestToJoin(ctx, joiner, team.ID, "let me in")
	require.NoError(t, err)

	_, err = svc.JoinWithCode(ctx, joiner, team.InviteCode)
	require.NoError(t, err)

	var got models.JoinRequest
	require.NoError(t, db.Where("id = ?", request.ID).First(&got).Error)
	require.Equal(t, models.JoinRequestAccepted, got.Status)
	require.NotNil(t, got.ResolvedAt)
}

// ================== REQUEST FLOW ==================

func TestRequestToJoin(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	hackathon := seedHackathon(t, db, 5)
	leader := seedUser(t, db, "alice")
	requester := seedUser(t, db, "bob", "react", "figma")
	team := seedTeam(t, svc, leader, hackathon.ID, 3)

	request, err := svc.RequestToJoin(ctx, requester, team.ID, "frontend person here")
	require.NoError(t, err)
	require.Equal(t, models.JoinRequestPending, request.Status)
	require.Equal(t, "bob", request.UserName)
	require.Equal(t, []string{"react", "figma"}, request.UserSkills)
	require.Nil(t, request.ResolvedAt)

	// a request does not put the user on the roster
	require.EqualValues(t, 1, memberCount(t, db, team.ID))

	// second pending request for the same team is rejected
	_, err = svc.RequestToJoin(ctx, requester, team.ID, "again")
	require.ErrorIs(t, err, models.ErrDuplicateRequest)

	// members cannot request
	_, err = svc.RequestToJoin(ctx, leader, team.ID, "")
	require.ErrorIs(t, err, models.ErrAlreadyMember)

	// the leader got notified
	var n int64
	require.NoError(t, db.Model(&models.Notification{}).
		Where("user_id = ? AND type = ?", leader.ID, models.NotificationJoinRequest).
		Count(&n).Error)
	require.EqualValues(t, 1, n)
}

func TestRequestToJoinFullTeam(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	hackathon := seedHackathon(t, db, 5)
	leader := seedUser(t, db, "alice")
	team := seedTeam(t, svc, leader, hackathon.ID, 2)

	_, err := svc.JoinWithCode(ctx, seedUser(t, db, "bob"), team.InviteCode)
	require.NoError(t, err)

	_, err = svc.RequestToJoin(ctx, seedUser(t, db, "carol"), team.ID, "")
	require.ErrorIs(t, err, models.ErrTeamFull)
}

// AcceptRequest must put the requester on the roster, not just bump the
// member counter.
func TestAcceptRequestAppendsMember(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	hackathon := seedHackathon(t, db, 5)
	leader := seedUser(t, db, "alice")
	requester := seedUser(t, db, "bob", "react")
	team := seedTeam(t, svc, leader, hackathon.ID, 3)

	request, err := svc.RequestToJoin(ctx, requester, team.ID, "")
	require.NoError(t, err)

	annotated, err := svc.GetTeamByID(ctx, team.ID, nil)
	require.NoError(t, err)
	require.EqualValues(t, 1, annotated.PendingRequests)

	got, err := svc.AcceptRequest(ctx, leader.ID, request.ID)
	require.NoError(t, err)
	require.Equal(t, models.JoinRequestAccepted, got.Status)
	require.NotNil(t, got.ResolvedAt)

	annotated, err = svc.GetTeamByID(ctx, team.ID, nil)
	require.NoError(t, err)
	require.EqualValues(t, 0, annotated.PendingRequests)

	// the roster and the counter agree
	require.EqualValues(t, 2, memberCount(t, db, team.ID))
	require.Equal(t, 2, reloadTeam(t, db, team.ID).CurrentMembers)

	var member models.TeamMember
	require.NoError(t, db.Where("team_id = ? AND user_id = ?", team.ID, requester.ID).
		First(&member).Error)
	require.Equal(t, models.TeamRoleMember, member.Role)
	require.Equal(t, []string{"react"}, member.Skills)
}

func TestAcceptRequestLeaderOnly(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	hackathon := seedHackathon(t, db, 5)
	leader := seedUser(t, db, "alice")
	member := seedUser(t, db, "bob")
	requester := seedUser(t, db, "carol")
	team := seedTeam(t, svc, leader, hackathon.ID, 3)

	_, err := svc.JoinWithCode(ctx, member, team.InviteCode)
	require.NoError(t, err)

	request, err := svc.RequestToJoin(ctx, requester, team.ID, "")
	require.NoError(t, err)

	_, err = svc.AcceptRequest(ctx, member.ID, request.ID)
	require.ErrorIs(t, err, models.ErrNotLeader)

	_, err = svc.AcceptRequest(ctx, requester.ID, request.ID)
	require.ErrorIs(t, err, models.ErrNotLeader)
}

func TestAcceptRequestFullTeamStaysPending(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	hackathon := seedHackathon(t, db, 5)
	leader := seedUser(t, db, "alice")
	requester := seedUser(t, db, "bob")
	team := seedTeam(t, svc, leader, hackathon.ID, 2)

	request, err := svc.RequestToJoin(ctx, requester, team.ID, "")
	require.NoError(t, err)

	// team fills up before the leader gets to the request
	_, err = svc.JoinWithCode(ctx, seedUser(t, db, "carol"), team.InviteCode)
	require.NoError(t, err)

	_, err = svc.AcceptRequest(ctx, leader.ID, request.ID)
	require.ErrorIs(t, err, models.ErrTeamFull)

	// nothing moved: the request is still pending, the roster unchanged
	var got models.JoinRequest
	require.NoError(t, db.Where("id = ?", request.ID).First(&got).Error)
	require.Equal(t, models.JoinRequestPending, got.Status)
	require.EqualValues(t, 2, memberCount(t, db, team.ID))
	require.Equal(t, 2, reloadTeam(t, db, team.ID).CurrentMembers)
}

func TestAcceptRequestAlreadyResolved(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	hackathon := seedHackathon(t, db, 5)
	leader := seedUser(t, db, "alice")
	requester := seedUser(t, db, "bob")
	team := seedTeam(t, svc, leader, hackathon.ID, 4)

	request, err := svc.RequestToJoin(ctx, requester, team.ID, "")
	require.NoError(t, err)

	_, err = svc.AcceptRequest(ctx, leader.ID, request.ID)
	require.NoError(t, err)

	// accepting twice must not double-append
	_, err = svc.AcceptRequest(ctx, leader.ID, request.ID)
	require.ErrorIs(t, err, models.ErrRequestResolved)
	require.EqualValues(t, 2, memberCount(t, db, team.ID))
	require.Equal(t, 2, reloadTeam(t, db, team.ID).CurrentMembers)

	_, err = svc.RejectRequest(ctx, leader.ID, request.ID)
	require.ErrorIs(t, err, models.ErrRequestResolved)

	_, err = svc.AcceptRequest(ctx, leader.ID, "b5e7f6de-0000-0000-0000-000000000000")
	require.ErrorIs(t, err, models.ErrRequestNotFound)
}

func TestRejectRequest(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	hackathon := seedHackathon(t, db, 5)
	leader := seedUser(t, db, "alice")
	requester := seedUser(t, db, "bob")
	team := seedTeam(t, svc, leader, hackathon.ID, 3)

	request, err := svc.RequestToJoin(ctx, requester, team.ID, "")
	require.NoError(t, err)

	got, err := svc.RejectRequest(ctx, leader.ID, request.ID)
	require.NoError(t, err)
	require.Equal(t, models.JoinRequestRejected, got.Status)
	require.NotNil(t, got.ResolvedAt)

	// rejection never touches the roster
	require.EqualValues(t, 1, memberCount(t, db, team.ID))
	require.Equal(t, 1, reloadTeam(t, db, team.ID).CurrentMembers)

	// a rejected user may ask again
	_, err = svc.RequestToJoin(ctx, requester, team.ID, "second try")
	require.NoError(t, err)
}

func TestListRequests(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	hackathon := seedHackathon(t, db, 5)
	leader := seedUser(t, db, "alice")
	team := seedTeam(t, svc, leader, hackathon.ID, 4)

	for i := 0; i < 3; i++ {
		u := seedUser(t, db, fmt.Sprintf("user%d", i))
		_, err := svc.RequestToJoin(ctx, u, team.ID, "")
		require.NoError(t, err)
	}

	requests, err := svc.ListRequestsForTeam(ctx, leader.ID, team.ID)
	require.NoError(t, err)
	require.Len(t, requests, 3)

	outsider := seedUser(t, db, "mallory")
	_, err = svc.ListRequestsForTeam(ctx, outsider.ID, team.ID)
	require.ErrorIs(t, err, models.ErrNotLeader)
}

// ================== LEAVE / REMOVE / TRANSFER ==================

func TestLeaveTeam(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	hackathon := seedHackathon(t, db, 5)
	leader := seedUser(t, db, "alice")
	member := seedUser(t, db, "bob")
	team := seedTeam(t, svc, leader, hackathon.ID, 3)

	_, err := svc.JoinWithCode(ctx, member, team.InviteCode)
	require.NoError(t, err)

	require.NoError(t, svc.LeaveTeam(ctx, member.ID, team.ID))
	require.EqualValues(t, 1, memberCount(t, db, team.ID))
	require.Equal(t, 1, reloadTeam(t, db, team.ID).CurrentMembers)

	// leaving twice fails
	require.ErrorIs(t, svc.LeaveTeam(ctx, member.ID, team.ID), models.ErrNotMember)
}

func TestLeaderCannotLeave(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	hackathon := seedHackathon(t, db, 5)
	leader := seedUser(t, db, "alice")
	team := seedTeam(t, svc, leader, hackathon.ID, 3)

	require.ErrorIs(t, svc.LeaveTeam(ctx, leader.ID, team.ID), models.ErrLeaderCannotLeave)
	require.EqualValues(t, 1, memberCount(t, db, team.ID))
}

func TestRemoveMember(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	hackathon := seedHackathon(t, db, 5)
	leader := seedUser(t, db, "alice")
	member := seedUser(t, db, "bob")
	team := seedTeam(t, svc, leader, hackathon.ID, 3)

	_, err := svc.JoinWithCode(ctx, member, team.InviteCode)
	require.NoError(t, err)

	// only the leader removes
	require.ErrorIs(t, svc.RemoveMember(ctx, member.ID, team.ID, leader.ID), models.ErrNotLeader)

	// the leader cannot be removed
	require.ErrorIs(t, svc.RemoveMember(ctx, leader.ID, team.ID, leader.ID), models.ErrValidation)

	require.NoError(t, svc.RemoveMember(ctx, leader.ID, team.ID, member.ID))
	require.EqualValues(t, 1, memberCount(t, db, team.ID))
	require.Equal(t, 1, reloadTeam(t, db, team.ID).CurrentMembers)
}

func TestTransferLeadership(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	hackathon := seedHackathon(t, db, 5)
	leader := seedUser(t, db, "alice")
	member := seedUser(t, db, "bob")
	team := seedTeam(t, svc, leader, hackathon.ID, 3)

	_, err := svc.JoinWithCode(ctx, member, team.InviteCode)
	require.NoError(t, err)

	require.ErrorIs(t, svc.TransferLeadership(ctx, leader.ID, team.ID, leader.ID), models.ErrValidation)
	require.ErrorIs(t, svc.TransferLeadership(ctx, member.ID, team.ID, member.ID), models.ErrNotLeader)
	require.ErrorIs(t, svc.TransferLeadership(ctx, leader.ID, team.ID, "b5e7f6de-0000-0000-0000-000000000000"), models.ErrNotMember)

	require.NoError(t, svc.TransferLeadership(ctx, leader.ID, team.ID, member.ID))

	// exactly one leader, and the team points at them
	require.Equal(t, member.ID, reloadTeam(t, db, team.ID).TeamLeadID)

	var leaders int64
	require.NoError(t, db.Model(&models.TeamMember{}).
		Where("team_id = ? AND role = ?", team.ID, models.TeamRoleLeader).
		Count(&leaders).Error)
	require.EqualValues(t, 1, leaders)

	// the old leader is now an ordinary member and may leave
	require.NoError(t, svc.LeaveTeam(ctx, leader.ID, team.ID))
}

func TestDisbandTeam(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	hackathon := seedHackathon(t, db, 5)
	leader := seedUser(t, db, "alice")
	requester := seedUser(t, db, "bob")
	team := seedTeam(t, svc, leader, hackathon.ID, 3)

	request, err := svc.RequestToJoin(ctx, requester, team.ID, "")
	require.NoError(t, err)

	require.ErrorIs(t, svc.DisbandTeam(ctx, requester.ID, team.ID), models.ErrNotLeader)
	require.NoError(t, svc.DisbandTeam(ctx, leader.ID, team.ID))

	// the team is gone from the registry's point of view
	_, err = svc.GetTeamByID(ctx, team.ID, nil)
	require.ErrorIs(t, err, models.ErrTeamNotFound)

	// outstanding requests were rejected
	var got models.JoinRequest
	require.NoError(t, db.Where("id = ?", request.ID).First(&got).Error)
	require.Equal(t, models.JoinRequestRejected, got.Status)
}

// ================== UPDATE ==================

func TestUpdateTeam(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	hackathon := seedHackathon(t, db, 5)
	leader := seedUser(t, db, "alice")
	team := seedTeam(t, svc, leader, hackathon.ID, 4)

	name := "Renamed"
	skills := []string{"rust"}
	got, err := svc.UpdateTeam(ctx, leader.ID, team.ID, UpdateTeamInput{
		Name:           &name,
		RequiredSkills: &skills,
	})
	require.NoError(t, err)
	require.Equal(t, "Renamed", got.Name)
	require.Equal(t, []string{"rust"}, got.RequiredSkills)

	// untouched fields survive a partial update
	require.Equal(t, team.InviteCode, got.InviteCode)
	require.Equal(t, team.Description, got.Description)

	outsider := seedUser(t, db, "mallory")
	_, err = svc.UpdateTeam(ctx, outsider.ID, team.ID, UpdateTeamInput{Name: &name})
	require.ErrorIs(t, err, models.ErrNotLeader)
}

func TestUpdateTeamCapacityFloor(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	hackathon := seedHackathon(t, db, 5)
	leader := seedUser(t, db, "alice")
	team := seedTeam(t, svc, leader, hackathon.ID, 4)

	_, err := svc.JoinWithCode(ctx, seedUser(t, db, "bob"), team.InviteCode)
	require.NoError(t, err)
	_, err = svc.JoinWithCode(ctx, seedUser(t, db, "carol"), team.InviteCode)
	require.NoError(t, err)

	two := 2
	_, err = svc.UpdateTeam(ctx, leader.ID, team.ID, UpdateTeamInput{MaxMembers: &two})
	require.ErrorIs(t, err, models.ErrValidation)

	three := 3
	got, err := svc.UpdateTeam(ctx, leader.ID, team.ID, UpdateTeamInput{MaxMembers: &three})
	require.NoError(t, err)
	require.Equal(t, 3, got.MaxMembers)
}

// ================== DISCOVERY ==================

func TestListAvailableTeams(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	hackathon := seedHackathon(t, db, 5)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	viewer := seedUser(t, db, "carol", "go")

	open := seedTeam(t, svc, alice, hackathon.ID, 3)
	full := seedTeam(t, svc, bob, hackathon.ID, 2)
	_, err := svc.JoinWithCode(ctx, seedUser(t, db, "dave"), full.InviteCode)
	require.NoError(t, err)

	mine := seedTeam(t, svc, viewer, hackathon.ID, 3)

	teams, err := svc.ListAvailableTeams(ctx, viewer, hackathon.ID, 20)
	require.NoError(t, err)

	// full teams and the viewer's own teams are filtered out
	require.Len(t, teams, 1)
	require.Equal(t, open.ID, teams[0].ID)
	require.NotEqual(t, mine.ID, teams[0].ID)

	// deterministic matcher: "go" hits one of {"go","react"} exactly
	require.Equal(t, 75, teams[0].SkillMatchPercentage)
}

func TestSearchTeams(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	hackathon := seedHackathon(t, db, 5)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	seedTeam(t, svc, alice, hackathon.ID, 3)
	seedTeam(t, svc, bob, hackathon.ID, 3)

	teams, err := svc.SearchTeams(ctx, nil, "alice", 20)
	require.NoError(t, err)
	require.Len(t, teams, 1)
	require.Equal(t, "Team alice", teams[0].Name)

	teams, err = svc.SearchTeams(ctx, nil, "", 20)
	require.NoError(t, err)
	require.Len(t, teams, 2)
}

// ================== END TO END ==================

func TestTeamLifecycle(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	hackathon := seedHackathon(t, db, 5)
	alice := seedUser(t, db, "alice", "go")
	bob := seedUser(t, db, "bob", "react")
	carol := seedUser(t, db, "carol", "design")

	// alice creates a two-seat team
	team, err := svc.CreateTeam(ctx, alice, CreateTeamInput{
		Name:        "Alpha",
		Description: "small and fast",
		HackathonID: hackathon.ID,
		MaxMembers:  2,
	})
	require.NoError(t, err)

	// bob asks, alice accepts: team is now full
	request, err := svc.RequestToJoin(ctx, bob, team.ID, "")
	require.NoError(t, err)
	_, err = svc.AcceptRequest(ctx, alice.ID, request.ID)
	require.NoError(t, err)

	// carol cannot get in by any path
	_, err = svc.RequestToJoin(ctx, carol, team.ID, "")
	require.ErrorIs(t, err, models.ErrTeamFull)
	_, err = svc.JoinWithCode(ctx, carol, team.InviteCode)
	require.ErrorIs(t, err, models.ErrTeamFull)

	// bob leaves, carol joins the freed seat
	require.NoError(t, svc.LeaveTeam(ctx, bob.ID, team.ID))
	_, err = svc.JoinWithCode(ctx, carol, team.InviteCode)
	require.NoError(t, err)

	got, err := svc.GetTeamByID(ctx, team.ID, nil)
	require.NoError(t, err)
	require.Equal(t, 2, got.CurrentMembers)
	require.Len(t, got.Members, 2)

	// alice hands off and walks away, carol disbands
	require.NoError(t, svc.TransferLeadership(ctx, alice.ID, team.ID, carol.ID))
	require.NoError(t, svc.LeaveTeam(ctx, alice.ID, team.ID))
	require.NoError(t, svc.DisbandTeam(ctx, carol.ID, team.ID))

	_, err = svc.GetTeamByID(ctx, team.ID, nil)
	require.ErrorIs(t, err, models.ErrTeamNotFound)
}
