package steps

import (
	"errors"
	"testing"

	create_ctx "github.com/brainsum/themekit/cli/create/context"
	"github.com/brainsum/themekit/cli/create/internal/app_template"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type installRecorder struct {
	installed []string
	checked   []string
	err       error
}

func (r *installRecorder) step(confirmer *mockConfirmer) InstallPackages {
	return InstallPackages{
		Confirmer: confirmer,
		CheckNode: func(dir string) error {
			r.checked = append(r.checked, dir)
			return errors.New("node is too old")
		},
		Install: func(dir string) error {
			r.installed = append(r.installed, dir)
			return r.err
		},
	}
}

func TestInstallPackages(t *testing.T) {
	templateCtx := app_template.NewTemplateContext()
	templateCtx.TargetAppPath = "/themes/rustique"

	tests := []struct {
		name      string
		createCtx create_ctx.CreateCtx
		answer    bool
		installed bool
		asked     bool
	}{
		{"confirmed", create_ctx.CreateCtx{}, true, true, true},
		{"declined", create_ctx.CreateCtx{}, false, false, true},
		{"skip", create_ctx.CreateCtx{SkipInstall: true}, true, false, false},
		{"silent", create_ctx.CreateCtx{SilentMode: true}, true, false, false},
		{"silent install", create_ctx.CreateCtx{SilentMode: true, Install: true}, false, true, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			recorder := installRecorder{}
			confirmer := &mockConfirmer{answer: tc.answer}
			require.NoError(t, recorder.step(confirmer).Run(&tc.createCtx, &templateCtx))
			if tc.installed {
				assert.Equal(t, []string{"/themes/rustique"}, recorder.installed)
				// Node version mismatch is only a warning.
				assert.Equal(t, []string{"/themes/rustique"}, recorder.checked)
			} else {
				assert.Empty(t, recorder.installed)
			}
			assert.Equal(t, tc.asked, len(confirmer.questions) == 1)
		})
	}
}

func TestInstallPackagesFailure(t *testing.T) {
	templateCtx := app_template.NewTemplateContext()
	templateCtx.TargetAppPath = "/themes/rustique"
	recorder := installRecorder{err: errors.New("exit status 1")}

	createCtx := create_ctx.CreateCtx{Install: true}
	err := recorder.step(&mockConfirmer{}).Run(&createCtx, &templateCtx)
	require.EqualError(t, err, "packages installation failed: exit status 1")
}
