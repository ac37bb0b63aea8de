package core

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/luxaris/luxaris/internal/domain"
	"github.com/luxaris/luxaris/internal/plugins/db/pgdb"
	"github.com/luxaris/luxaris/internal/plugins/template"
)

// TemplateService owns the PostTemplate entity: CRUD plus rendering.
type TemplateService struct {
	templates TemplateStore
}

func NewTemplateService(templates TemplateStore) *TemplateService {
	return &TemplateService{templates: templates}
}

// TemplateInput carries create/update fields. Update treats nil pointers as
// "leave unchanged".
type TemplateInput struct {
	Name             string                        `json:"name"`
	Description      *string                       `json:"description,omitempty"`
	Body             string                        `json:"template_body"`
	DefaultChannelID *uuid.UUID                    `json:"default_channel_id,omitempty"`
	Constraints      *domain.GenerationConstraints `json:"constraints,omitempty"`
}

type TemplatePatch struct {
	Name             *string                       `json:"name,omitempty"`
	Description      *string                       `json:"description,omitempty"`
	Body             *string                       `json:"template_body,omitempty"`
	DefaultChannelID *uuid.UUID                    `json:"default_channel_id,omitempty"`
	Constraints      *domain.GenerationConstraints `json:"constraints,omitempty"`
}

type RenderResult struct {
	RenderedContent  string   `json:"rendered_content"`
	PlaceholdersUsed []string `json:"placeholders_used"`
}

func (s *TemplateService) Create(ctx context.Context, ownerID uuid.UUID, input TemplateInput) (*pgdb.Template, error) {
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Body) == "" {
		return nil, domain.Fail(domain.CodeTemplateNameAndBodyRequired, "name and template_body are required")
	}
	tpl := &pgdb.Template{
		OwnerID:          ownerID,
		Name:             input.Name,
		Description:      input.Description,
		Body:             input.Body,
		DefaultChannelID: input.DefaultChannelID,
		Constraints:      input.Constraints,
	}
	if err := s.templates.Create(ctx, tpl); err != nil {
		return nil, errors.Wrap(err, "create template")
	}
	return tpl, nil
}

func (s *TemplateService) Get(ctx context.Context, ownerID, templateID uuid.UUID) (*pgdb.Template, error) {
	return s.owned(ctx, ownerID, templateID)
}

func (s *TemplateService) List(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]pgdb.Template, domain.PageMeta, error) {
	if limit <= 0 {
		limit = defaultSessionPageSize
	}
	if limit > maxSessionPageSize {
		limit = maxSessionPageSize
	}
	if offset < 0 {
		offset = 0
	}
	templates, total, err := s.templates.List(ctx, ownerID, limit, offset)
	if err != nil {
		return nil, domain.PageMeta{}, errors.Wrap(err, "list templates")
	}
	return templates, domain.PageMeta{Total: total, Limit: limit, Offset: offset}, nil
}

func (s *TemplateService) Update(ctx context.Context, ownerID, templateID uuid.UUID, patch TemplatePatch) (*pgdb.Template, error) {
	tpl, err := s.owned(ctx, ownerID, templateID)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		tpl.Name = *patch.Name
	}
	if patch.Description != nil {
		tpl.Description = patch.Description
	}
	if patch.Body != nil {
		tpl.Body = *patch.Body
	}
	if patch.DefaultChannelID != nil {
		tpl.DefaultChannelID = patch.DefaultChannelID
	}
	if patch.Constraints != nil {
		tpl.Constraints = patch.Constraints
	}
	if strings.TrimSpace(tpl.Name) == "" || strings.TrimSpace(tpl.Body) == "" {
		return nil, domain.Fail(domain.CodeTemplateNameAndBodyRequired, "name and template_body are required")
	}
	if err := s.templates.Update(ctx, tpl); err != nil {
		return nil, errors.Wrap(err, "update template")
	}
	return tpl, nil
}

func (s *TemplateService) Delete(ctx context.Context, ownerID, templateID uuid.UUID) error {
	if _, err := s.owned(ctx, ownerID, templateID); err != nil {
		return err
	}
	if err := s.templates.SoftDelete(ctx, templateID); err != nil {
		return errors.Wrap(err, "delete template")
	}
	return nil
}

// Render substitutes values into an owned template. Every placeholder in the
// body must have a value; missing names fail before any substitution.
func (s *TemplateService) Render(ctx context.Context, ownerID, templateID uuid.UUID, values map[string]any) (*RenderResult, error) {
	tpl, err := s.owned(ctx, ownerID, templateID)
	if err != nil {
		return nil, err
	}

	required := template.Placeholders(tpl.Body)
	missing := lo.Filter(required, func(name string, _ int) bool {
		_, ok := values[name]
		return !ok
	})
	if len(missing) > 0 {
		return nil, domain.Failf(domain.CodeMissingPlaceholderValues, "%s", strings.Join(missing, ", "))
	}

	return &RenderResult{
		RenderedContent:  template.Render(tpl.Body, values),
		PlaceholdersUsed: required,
	}, nil
}

func (s *TemplateService) owned(ctx context.Context, ownerID, templateID uuid.UUID) (*pgdb.Template, error) {
	tpl, err := s.templates.Get(ctx, templateID)
	if err != nil {
		return nil, errors.Wrap(err, "load template")
	}
	if tpl == nil {
		return nil, domain.Failf(domain.CodeTemplateNotFound, "template %s not found", templateID)
	}
	if tpl.OwnerID != ownerID {
		return nil, domain.Fail(domain.CodeTemplateAccessDenied, "template belongs to another principal")
	}
	return tpl, nil
}
