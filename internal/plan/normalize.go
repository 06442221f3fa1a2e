package plan

import (
	"fmt"
	"strings"

	"github.com/filegrind/iiifpres-go/content"
)

func (p *Plan) normalize(registry *content.Registry) error {
	p.BaseID = strings.TrimSpace(p.BaseID)
	p.Minter = strings.ToLower(strings.TrimSpace(p.Minter))
	if p.Minter == "" {
		p.Minter = MinterNOID
	}
	p.Canvas.ID = strings.TrimSpace(p.Canvas.ID)

	if err := normalizeSteps("paint", p.Paint, registry); err != nil {
		return err
	}
	return normalizeSteps("supplement", p.Supplement, registry)
}

func normalizeSteps(section string, steps []Step, registry *content.Registry) error {
	for i := range steps {
		step := &steps[i]
		step.Selector = strings.TrimSpace(step.Selector)
		step.TimeMode = strings.ToLower(strings.TrimSpace(step.TimeMode))

		for j := range step.Content {
			item := &step.Content[j]
			if item.Absent {
				continue
			}
			item.ID = strings.TrimSpace(item.ID)
			item.Format = strings.TrimSpace(item.Format)
			if strings.TrimSpace(item.Type) != "" {
				item.Type = strings.TrimSpace(item.Type)
				continue
			}

			typ, format, err := registry.Infer(item.ID, item.Format)
			if err != nil {
				return fmt.Errorf("%s[%d].content[%d]: %w", section, i, j, err)
			}
			item.Type = string(typ)
			item.Format = format
		}
	}
	return nil
}
