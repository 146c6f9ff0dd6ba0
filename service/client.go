package service

import (
	"fmt"
	"strings"

	"libreria-pos/model"
	"libreria-pos/state"

	"github.com/google/uuid"
)

// ClientChoice is either an existing client or the inline fields of a new one.
type ClientChoice struct {
	ClientID *uuid.UUID   `json:"client_id,omitempty"`
	New      InlineClient `json:"new_client"`
}

// InlineClient holds the new-client fields typed at the register. Only the
// name is required.
type InlineClient struct {
	Name         string             `json:"name"`
	Document     string             `json:"document"`
	DocumentType model.DocumentType `json:"document_type"`
	Phone        string             `json:"phone,omitempty"`
	Email        string             `json:"email,omitempty"`
}

func (c ClientChoice) selected() bool { return c.ClientID != nil }

// resolvedClient carries exactly one of existing or inline.
type resolvedClient struct {
	existing *model.Client
	inline   *model.ClientInput
}

func resolveClient(st *state.State, choice ClientChoice) (resolvedClient, error) {
	if choice.selected() {
		c, ok := st.Client(*choice.ClientID)
		if !ok {
			return resolvedClient{}, fmt.Errorf("client %s: %w", *choice.ClientID, model.ErrNotFound)
		}
		return resolvedClient{existing: &c}, nil
	}
	name := strings.TrimSpace(choice.New.Name)
	if name == "" {
		return resolvedClient{}, model.ErrClientRequired
	}
	docType, err := model.ParseDocumentType(string(choice.New.DocumentType))
	if err != nil {
		return resolvedClient{}, err
	}
	return resolvedClient{inline: &model.ClientInput{
		Name:         name,
		Document:     strings.TrimSpace(choice.New.Document),
		DocumentType: docType,
		Phone:        strings.TrimSpace(choice.New.Phone),
		Email:        strings.TrimSpace(choice.New.Email),
	}}, nil
}
