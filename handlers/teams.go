// handlers/teams.go - Team formation HTTP handlers
package handlers

import (
	"strconv"

	"hackmate/middleware"
	"hackmate/models"
	"hackmate/services"

	"github.com/gofiber/fiber/v2"
)

// ================== TEAM CRUD ENDPOINTS ==================

// CreateTeam creates a new team
// POST /api/teams
func CreateTeam(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return respondError(c, err)
	}

	var req struct {
		Name           string   `json:"name"`
		Description    string   `json:"description"`
		HackathonID    string   `json:"hackathon_id"`
		TechStack      []string `json:"tech_stack"`
		RequiredSkills []string `json:"required_skills"`
		MaxMembers     int      `json:"max_members"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	team, err := teamService.CreateTeam(c.UserContext(), user, services.CreateTeamInput{
		Name:           req.Name,
		Description:    req.Description,
		HackathonID:    req.HackathonID,
		TechStack:      req.TechStack,
		RequiredSkills: req.RequiredSkills,
		MaxMembers:     req.MaxMembers,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"message": "Team created successfully",
		"team":    team,
	})
}

// GetTeam retrieves a team by ID, annotated for the viewer
// GET /api/teams/:id
func GetTeam(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return respondError(c, err)
	}

	team, err := teamService.GetTeamByID(c.UserContext(), c.Params("id"), user)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"team":    team,
	})
}

// GetUserTeams retrieves the authenticated user's teams
// GET /api/teams
func GetUserTeams(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return respondError(c, err)
	}

	teams, err := teamService.GetUserTeams(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"teams":   teams,
		"count":   len(teams),
	})
}

// GetAvailableTeams lists open teams the viewer could join
// GET /api/teams/available?hackathon_id=...
func GetAvailableTeams(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return respondError(c, err)
	}

	teams, err := teamService.ListAvailableTeams(c.UserContext(), user,
		c.Query("hackathon_id"), queryLimit(c, 20))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"teams":   teams,
		"count":   len(teams),
	})
}

// SearchTeams searches teams by name or description
// GET /api/teams/search?q=...
func SearchTeams(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return respondError(c, err)
	}

	teams, err := teamService.SearchTeams(c.UserContext(), user, c.Query("q", ""), queryLimit(c, 20))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"teams":   teams,
		"count":   len(teams),
	})
}

// UpdateTeam merges fields into the team (leader only)
// PUT /api/teams/:id
func UpdateTeam(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return respondError(c, err)
	}

	var req struct {
		Name           *string            `json:"name"`
		Description    *string            `json:"description"`
		TechStack      *[]string          `json:"tech_stack"`
		RequiredSkills *[]string          `json:"required_skills"`
		MaxMembers     *int               `json:"max_members"`
		TeamStatus     *models.TeamStatus `json:"team_status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	team, err := teamService.UpdateTeam(c.UserContext(), userID, c.Params("id"), services.UpdateTeamInput{
		Name:           req.Name,
		Description:    req.Description,
		TechStack:      req.TechStack,
		RequiredSkills: req.RequiredSkills,
		MaxMembers:     req.MaxMembers,
		TeamStatus:     req.TeamStatus,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Team updated successfully",
		"team":    team,
	})
}

// DisbandTeam soft deletes a team (leader only)
// DELETE /api/teams/:id
func DisbandTeam(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return respondError(c, err)
	}

	if err := teamService.DisbandTeam(c.UserContext(), userID, c.Params("id")); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Team disbanded",
	})
}

// ================== MEMBERSHIP ENDPOINTS ==================

// JoinWithCode joins a team directly via invite code
// POST /api/teams/join
func JoinWithCode(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return respondError(c, err)
	}

	var req struct {
		InviteCode string `json:"invite_code"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	if req.InviteCode == "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invite code is required"})
	}

	team, err := teamService.JoinWithCode(c.UserContext(), user, req.InviteCode)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Successfully joined team",
		"team":    team,
	})
}

// GetTeamByCode previews a team by invite code without joining
// GET /api/teams/code/:code
func GetTeamByCode(c *fiber.Ctx) error {
	team, err := teamService.GetTeamByInviteCode(c.UserContext(), c.Params("code"))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"team":    team,
	})
}

// RequestToJoin files a pending join request
// POST /api/teams/:id/requests
func RequestToJoin(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return respondError(c, err)
	}

	var req struct {
		Message string `json:"message"`
	}
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	request, err := teamService.RequestToJoin(c.UserContext(), user, c.Params("id"), req.Message)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"message": "Join request sent",
		"request": request,
	})
}

// ListTeamRequests lists pending requests for a team (leader only)
// GET /api/teams/:id/requests
func ListTeamRequests(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return respondError(c, err)
	}

	requests, err := teamService.ListRequestsForTeam(c.UserContext(), userID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"requests": requests,
		"count":    len(requests),
	})
}

// ListMyRequests lists the requests the caller has sent
// GET /api/teams/requests
func ListMyRequests(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return respondError(c, err)
	}

	requests, err := teamService.ListRequestsByUser(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"requests": requests,
		"count":    len(requests),
	})
}

// AcceptRequest accepts a pending join request (leader only)
// POST /api/teams/requests/:requestId/accept
func AcceptRequest(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return respondError(c, err)
	}

	request, err := teamService.AcceptRequest(c.UserContext(), userID, c.Params("requestId"))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Request accepted",
		"request": request,
	})
}

// RejectRequest rejects a pending join request (leader only)
// POST /api/teams/requests/:requestId/reject
func RejectRequest(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return respondError(c, err)
	}

	request, err := teamService.RejectRequest(c.UserContext(), userID, c.Params("requestId"))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Request rejected",
		"request": request,
	})
}

// LeaveTeam removes the caller from a team
// POST /api/teams/:id/leave
func LeaveTeam(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return respondError(c, err)
	}

	if err := teamService.LeaveTeam(c.UserContext(), userID, c.Params("id")); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Successfully left team",
	})
}

// GetTeamMembers retrieves the roster of a team
// GET /api/teams/:id/members
func GetTeamMembers(c *fiber.Ctx) error {
	members, err := teamService.GetTeamMembers(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"members": members,
		"count":   len(members),
	})
}

// RemoveMember removes a member from the team (leader only)
// DELETE /api/teams/:id/members/:memberId
func RemoveMember(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return respondError(c, err)
	}

	if err := teamService.RemoveMember(c.UserContext(), userID, c.Params("id"), c.Params("memberId")); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Member removed",
	})
}

// TransferLeadership hands the leader role to another member
// PUT /api/teams/:id/transfer
func TransferLeadership(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return respondError(c, err)
	}

	var req struct {
		NewLeadID string `json:"new_lead_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	if req.NewLeadID == "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "new_lead_id is required"})
	}

	if err := teamService.TransferLeadership(c.UserContext(), userID, c.Params("id"), req.NewLeadID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Leadership transferred",
	})
}

func queryLimit(c *fiber.Ctx, def int) int {
	return queryInt(c, "limit", def)
}

func queryInt(c *fiber.Ctx, key string, def int) int {
	if raw := c.Query(key); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			return parsed
		}
	}
	return def
}
