package ledger

import (
	"fmt"

	"github.com/hxuan190/fund-router/internal/domain"
)

// RequireOwner rejects any caller that is not exactly the configured owner.
func RequireOwner(caller string, cfg *domain.Configuration) error {
	if cfg == nil || caller == "" || caller != cfg.Owner {
		return fmt.Errorf("%w: caller %q is not the owner", ErrUnauthorized, caller)
	}
	return nil
}
