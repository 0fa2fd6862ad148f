package content

import "context"

type Loader interface {
	LoadPacks(ctx context.Context, root string) ([]Pack, error)
	FindPack(packs []Pack, packID string) (Pack, error)
}
