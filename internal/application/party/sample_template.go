package party

import (
	"context"
	"errors"
	"fmt"
	"io"

	domain "github.com/mohammadpnp/party-onboarding/internal/domain/party"
)

// SampleTemplateName is the static template file served for a party type.
func SampleTemplateName(t domain.Type) string {
	return "sample_5_" + t.Plural() + ".xlsx"
}

type templateOpener interface {
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

type GetSampleTemplateInput struct {
	PartyType domain.Type
}

type GetSampleTemplateOutput struct {
	FileName string
	Content  io.ReadCloser
}

type GetSampleTemplate interface {
	Execute(ctx context.Context, in GetSampleTemplateInput) (GetSampleTemplateOutput, error)
}

type getSampleTemplate struct {
	templates templateOpener
}

func NewGetSampleTemplate(templates templateOpener) GetSampleTemplate {
	return &getSampleTemplate{templates: templates}
}

func (uc *getSampleTemplate) Execute(ctx context.Context, in GetSampleTemplateInput) (GetSampleTemplateOutput, error) {
	name := SampleTemplateName(in.PartyType)

	content, err := uc.templates.Open(ctx, name)
	if err != nil {
		if errors.Is(err, domain.ErrTemplateNotFound) {
			return GetSampleTemplateOutput{}, ErrTemplateNotFound
		}
		return GetSampleTemplateOutput{}, fmt.Errorf("%w: %v", ErrLoadTemplate, err)
	}

	return GetSampleTemplateOutput{FileName: name, Content: content}, nil
}
