package content

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

type FSLoader struct{}

func NewLoader() *FSLoader { return &FSLoader{} }

// LoadPacks reads every directory under root containing a pack.yaml.
// Any malformed pack or challenge aborts the whole load with a descriptive
// error; a partially loaded catalog is worse than none.
func (l *FSLoader) LoadPacks(ctx context.Context, root string) ([]Pack, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}

	packs := make([]Pack, 0)
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !entry.IsDir() {
			continue
		}
		packPath := filepath.Join(root, entry.Name())
		packYAML := filepath.Join(packPath, "pack.yaml")
		if _, err := os.Stat(packYAML); err != nil {
			continue
		}
		pack, err := readPack(packYAML)
		if err != nil {
			return nil, fmt.Errorf("load pack %s: %w", packPath, err)
		}
		pack.Path = packPath

		challenges, err := l.readChallenges(pack)
		if err != nil {
			return nil, err
		}
		pack.LoadedChallenges = challenges
		packs = append(packs, pack)
	}

	sort.Slice(packs, func(i, j int) bool { return packs[i].PackID < packs[j].PackID })
	return packs, nil
}

func readPack(path string) (Pack, error) {
	var pack Pack
	b, err := os.ReadFile(path)
	if err != nil {
		return pack, err
	}
	if err := yaml.Unmarshal(b, &pack); err != nil {
		return pack, err
	}
	if err := pack.Validate(); err != nil {
		return pack, err
	}
	return pack, nil
}

func (l *FSLoader) readChallenges(pack Pack) ([]Challenge, error) {
	if len(pack.Challenges) > 0 {
		return l.readChallengesFromManifest(pack)
	}
	return l.readChallengesFromScan(pack)
}

func (l *FSLoader) readChallengesFromManifest(pack Pack) ([]Challenge, error) {
	challenges := make([]Challenge, 0, len(pack.Challenges))
	for _, ref := range pack.Challenges {
		if ref.Enabled != nil && !*ref.Enabled {
			continue
		}
		path := filepath.Join(pack.Path, ref.Path)
		ch, err := loadChallengeFile(path)
		if err != nil {
			return nil, err
		}
		if ch.ChallengeID != ref.ChallengeID {
			return nil, fmt.Errorf("challenge id mismatch for %s: manifest=%s file=%s", path, ref.ChallengeID, ch.ChallengeID)
		}
		if err := ValidateRubricRefs(ch, pack.Rubric); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		challenges = append(challenges, ch)
	}
	return challenges, nil
}

func (l *FSLoader) readChallengesFromScan(pack Pack) ([]Challenge, error) {
	dir := filepath.Join(pack.Path, "challenges")
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	challenges := make([]Challenge, 0)
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		ch, err := loadChallengeFile(path)
		if err != nil {
			return nil, err
		}
		if err := ValidateRubricRefs(ch, pack.Rubric); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		challenges = append(challenges, ch)
	}
	// Scan order is filename order, so packs without a manifest get a
	// predictable sequence from numeric prefixes.
	sort.Slice(challenges, func(i, j int) bool { return challenges[i].Path < challenges[j].Path })
	return challenges, nil
}

func loadChallengeFile(path string) (Challenge, error) {
	var ch Challenge
	b, err := os.ReadFile(path)
	if err != nil {
		return ch, err
	}
	if err := yaml.Unmarshal(b, &ch); err != nil {
		return ch, fmt.Errorf("parse %s: %w", path, err)
	}
	applyChallengeDefaults(&ch)
	if err := ch.Validate(); err != nil {
		return ch, fmt.Errorf("validate %s: %w", path, err)
	}
	ch.Path = path
	return ch, nil
}

func applyChallengeDefaults(ch *Challenge) {
	if ch.Type == "" {
		ch.Type = TypeCritique
	}
	if ch.Difficulty == "" {
		ch.Difficulty = DifficultyMedium
	}
}

func (l *FSLoader) FindPack(packs []Pack, packID string) (Pack, error) {
	for _, p := range packs {
		if p.PackID == packID {
			return p, nil
		}
	}
	return Pack{}, fmt.Errorf("pack %s not found", packID)
}
