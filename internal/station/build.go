package station

import (
	"fmt"

	"github.com/pion/logging"
)

// Build opens every source, starts it looping, and assigns vfreqs to the
// ones that opened. Sources that fail are logged and skipped.
func Build(sources []Source, opener Opener, min, max float64, log logging.LeveledLogger) (*Registry, error) {
	if len(sources) == 0 {
		return nil, ErrEmptyRegistry
	}

	var (
		opened  []Station
		skipped int
	)
	for _, src := range sources {
		ch, err := start(opener, src)
		if err != nil {
			log.Errorf("Couldn't load %s: %v", src.Path, err)
			skipped++
			continue
		}
		log.Debugf("Loaded %s", src.Path)
		opened = append(opened, Station{Source: src, Channel: ch})
	}
	if len(opened) == 0 {
		return nil, fmt.Errorf("%w: all %d sources failed to open", ErrEmptyRegistry, skipped)
	}

	for i, vf := range Assign(len(opened), min, max) {
		opened[i].VFreq = vf
		log.Debugf("%s assigned to virtual frequency %g", opened[i].Name, vf)
	}

	reg, err := NewRegistry(opened)
	if err != nil {
		return nil, err
	}
	reg.skipped = skipped
	if skipped > 0 {
		log.Warnf("%d of %d sources skipped", skipped, len(sources))
	}
	return reg, nil
}

func start(opener Opener, src Source) (Channel, error) {
	p, err := opener.Open(src)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	ch, err := p.Play(true)
	if err != nil {
		return nil, fmt.Errorf("play: %w", err)
	}
	return ch, nil
}
