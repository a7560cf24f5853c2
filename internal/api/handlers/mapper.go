package handlers

import (
	"github.com/cobraflex/printercare/internal/api/dto"
	"github.com/cobraflex/printercare/internal/domain/awards"
	"github.com/cobraflex/printercare/internal/domain/maintenance"
	"github.com/cobraflex/printercare/internal/domain/preset"
	"github.com/cobraflex/printercare/internal/domain/user"
)

// TaskToResponse converts a decorated task to its API representation
func TaskToResponse(v maintenance.TaskView) dto.TaskResponse {
	return dto.TaskResponse{
		ID:            v.ID,
		Title:         v.Title,
		Description:   v.Description,
		Category:      string(v.Category),
		Completed:     v.Completed,
		LastCompleted: v.LastCompleted,
		CompletedBy:   v.CompletedBy,
		Notes:         v.Notes,
		Custom:        v.Custom,
		NextDue:       v.NextDue,
		IsDue:         v.IsDue,
	}
}

// LogToResponse converts a maintenance log entry to its API representation
func LogToResponse(l maintenance.Log) dto.LogResponse {
	return dto.LogResponse{
		ID:           l.ID.String(),
		TaskID:       l.TaskID,
		TaskTitle:    l.TaskTitle,
		Category:     string(l.Category),
		CompletedAt:  l.CompletedAt,
		CompletedBy:  l.CompletedBy,
		SerialNumber: l.SerialNumber,
		Notes:        l.Notes,
	}
}

// AwardToResponse converts a catalog award to its API representation
func AwardToResponse(a awards.Award) dto.AwardResponse {
	return dto.AwardResponse{
		ID:          a.ID,
		Name:        a.Name,
		Description: a.Description,
		Icon:        a.Icon,
		Points:      a.Points,
		Tier:        string(a.Tier),
	}
}

// AwardsToResponse converts a slice of catalog awards
func AwardsToResponse(list []awards.Award) []dto.AwardResponse {
	out := make([]dto.AwardResponse, 0, len(list))
	for _, a := range list {
		out = append(out, AwardToResponse(a))
	}
	return out
}

// UserAwardToResponse converts an earned award record
func UserAwardToResponse(ua awards.UserAward) dto.UserAwardResponse {
	return dto.UserAwardResponse{
		ID:       ua.ID.String(),
		AwardID:  ua.AwardID,
		EarnedAt: ua.EarnedAt,
		TaskID:   ua.TaskID,
	}
}

// UserToResponse converts an account to its public API representation
func UserToResponse(u *user.User) dto.UserResponse {
	return dto.UserResponse{
		ID:           u.ID.String(),
		CompanyName:  u.CompanyName,
		SerialNumber: u.SerialNumber,
		OperatorName: u.OperatorName,
		Email:        u.Email,
		Role:         u.Role,
		Location:     u.Location,
		Department:   u.Department,
		Timezone:     u.Timezone,
		PurchaseDate: u.PurchaseDate.Format("2006-01-02"),
		LastLogin:    u.LastLogin,
		CreatedAt:    u.CreatedAt,
	}
}

// SessionToResponse converts a login record to its API representation
func SessionToResponse(s user.UserSession) dto.SessionResponse {
	return dto.SessionResponse{
		ID:         s.ID.String(),
		LoginTime:  s.LoginTime,
		LogoutTime: s.LogoutTime,
		Timezone:   s.Timezone,
		IPAddress:  s.IPAddress,
		UserAgent:  s.UserAgent,
	}
}

// PresetToResponse converts a preset to its API representation
func PresetToResponse(p *preset.TaskPreset) (dto.PresetResponse, error) {
	ids, err := p.TaskIDList()
	if err != nil {
		return dto.PresetResponse{}, err
	}
	if ids == nil {
		ids = []string{}
	}
	return dto.PresetResponse{
		ID:          p.ID.String(),
		Name:        p.Name,
		Description: p.Description,
		TaskIDs:     ids,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}, nil
}

// AssignmentToResponse converts a preset assignment record
func AssignmentToResponse(a preset.PresetAssignment) dto.AssignmentResponse {
	return dto.AssignmentResponse{
		ID:           a.ID.String(),
		UserEmail:    a.UserEmail,
		SerialNumber: a.SerialNumber,
		PresetID:     a.PresetID.String(),
		PresetName:   a.PresetName,
		AssignedAt:   a.AssignedAt,
	}
}
