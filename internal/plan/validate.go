package plan

import (
	"errors"
	"fmt"

	"github.com/filegrind/iiifpres-go/canvas"
	"github.com/filegrind/iiifpres-go/content"
	"github.com/filegrind/iiifpres-go/fragment"
)

// Validate ensures the plan is usable. Bounds are not checked here; they are
// checked when the plan is applied.
func (p *Plan) Validate() error {
	if p.BaseID == "" {
		return errors.New("base_id must be set")
	}
	if err := content.CheckID(p.BaseID); err != nil {
		return fmt.Errorf("base_id: %w", err)
	}
	if p.Minter != MinterNOID && p.Minter != MinterUUID {
		return fmt.Errorf("minter must be %q or %q, got %q", MinterNOID, MinterUUID, p.Minter)
	}
	if err := p.validateCanvas(); err != nil {
		return err
	}
	if err := validateSteps("paint", p.Paint); err != nil {
		return err
	}
	return validateSteps("supplement", p.Supplement)
}

func (p *Plan) validateCanvas() error {
	if p.Canvas.ID != "" {
		if err := content.CheckID(p.Canvas.ID); err != nil {
			return fmt.Errorf("canvas.id: %w", err)
		}
	}
	if (p.Canvas.Width > 0) != (p.Canvas.Height > 0) {
		return errors.New("canvas.width and canvas.height must be set together")
	}
	if p.Canvas.Width < 0 || p.Canvas.Height < 0 {
		return errors.New("canvas.width and canvas.height must not be negative")
	}
	if p.Canvas.Duration < 0 {
		return errors.New("canvas.duration must not be negative")
	}
	return nil
}

func validateSteps(section string, steps []Step) error {
	for i, step := range steps {
		if step.Selector != "" {
			if _, err := fragment.Parse(step.Selector); err != nil {
				return fmt.Errorf("%s[%d].selector: %w", section, i, err)
			}
		}
		if _, err := canvas.ParseTimeMode(step.TimeMode); err != nil {
			return fmt.Errorf("%s[%d].time_mode: %w", section, i, err)
		}

		present := 0
		for j, item := range step.Content {
			if item.Absent {
				continue
			}
			present++
			if err := content.CheckID(item.ID); err != nil {
				return fmt.Errorf("%s[%d].content[%d].id: %w", section, i, j, err)
			}
			if _, err := content.ParseType(item.Type); err != nil {
				return fmt.Errorf("%s[%d].content[%d].type: %w", section, i, j, err)
			}
		}
		if present == 0 {
			return fmt.Errorf("%s[%d] needs at least one content entry", section, i)
		}
	}
	return nil
}
