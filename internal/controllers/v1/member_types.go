package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/splitpot/backend/internal/models"
	sp_uuid "github.com/splitpot/backend/internal/uuid"
)

// MemberEditable represents all user configurable parameters
type MemberEditable struct {
	Name     string    `json:"name" example:"Ann" default:""`                            // Name of the member, unique within the ledger
	LedgerID uuid.UUID `json:"ledgerId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"` // ID of the ledger the member belongs to
	Note     string    `json:"note" example:"Moved in in April" default:""`             // Notes about the member
	Archived bool      `json:"archived" example:"true" default:"false"`                 // Has the member left the group?
}

func (editable MemberEditable) model() models.Member {
	return models.Member{
		Name:     editable.Name,
		LedgerID: editable.LedgerID,
		Note:     editable.Note,
		Archived: editable.Archived,
	}
}

type MemberLinks struct {
	Self         string `json:"self" example:"https://example.com/api/v1/members/af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"`                    // The member itself
	Ledger       string `json:"ledger" example:"https://example.com/api/v1/ledgers/52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"`                  // The ledger this member belongs to
	Transactions string `json:"transactions" example:"https://example.com/api/v1/transactions?member=af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"` // Transactions this member takes part in
}

type Member struct {
	models.DefaultModel
	MemberEditable
	Links MemberLinks `json:"links"`
}

func newMember(c *gin.Context, model models.Member) Member {
	url := c.GetString(string(models.DBContextURL))

	return Member{
		DefaultModel: model.DefaultModel,
		MemberEditable: MemberEditable{
			Name:     model.Name,
			LedgerID: model.LedgerID,
			Note:     model.Note,
			Archived: model.Archived,
		},
		Links: MemberLinks{
			Self:         fmt.Sprintf("%s/v1/members/%s", url, model.ID),
			Ledger:       fmt.Sprintf("%s/v1/ledgers/%s", url, model.LedgerID),
			Transactions: fmt.Sprintf("%s/v1/transactions?member=%s", url, model.ID),
		},
	}
}

type MemberListResponse struct {
	Data       []Member    `json:"data"`                                                          // List of Members
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type MemberCreateResponse struct {
	Data  []MemberResponse `json:"data"`                                                          // List of the created Members or their respective error
	Error *string          `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (m *MemberCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	m.Data = append(m.Data, MemberResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type MemberResponse struct {
	Data  *Member `json:"data"`                                                          // Data for the Member
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type MemberQueryFilter struct {
	LedgerID sp_uuid.UUID `form:"ledger"`                     // By ID of the Ledger
	Name     string       `form:"name" filterField:"false"`   // By name
	Note     string       `form:"note" filterField:"false"`   // By note
	Archived bool         `form:"archived"`                   // Is the Member archived?
	Search   string       `form:"search" filterField:"false"` // By string in name or note
	Offset   uint         `form:"offset" filterField:"false"` // The offset of the first Member returned. Defaults to 0.
	Limit    int          `form:"limit" filterField:"false"`  // Maximum number of Members to return. Defaults to 50.
}

func (f MemberQueryFilter) model() (models.Member, error) {
	return models.Member{
		LedgerID: f.LedgerID.UUID,
		Archived: f.Archived,
	}, nil
}
