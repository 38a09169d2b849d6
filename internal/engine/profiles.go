package engine

import (
	"context"
	"errors"
	"log"

	"github.com/pawsconnect/backend/internal/models"
	"gorm.io/gorm"
)

// DeleteProfile removes the actor's stored avatar, profile document,
// account row and identity-provider credential, in that order. The steps
// share no transaction: a failure partway leaves a partially-deleted actor,
// so the furthest completed step is logged for manual reconciliation. The
// avatar delete alone is best-effort; an empty avatar URL means the client
// placeholder and there is nothing to remove.
func (e *Engine) DeleteProfile(ctx context.Context, actor models.Actor) error {
	if actor.ID == "" {
		return ErrUnauthenticated
	}

	var avatarURL string
	if actor.IsShelter() {
		shelter, err := e.profiles.GetShelter(ctx, actor.ID)
		if err != nil {
			return storeErr(err)
		}
		avatarURL = shelter.ProfilePicture
	} else {
		user, err := e.profiles.GetUser(ctx, actor.ID)
		if err != nil {
			return storeErr(err)
		}
		avatarURL = user.ProfilePicture
	}

	step := "started"
	if avatarURL != "" && e.media != nil {
		if err := e.media.Delete(ctx, avatarURL); err != nil {
			log.Printf("delete profile %s: avatar delete failed, object %s may be orphaned: %v", actor.ID, avatarURL, err)
		} else {
			step = "avatar deleted"
		}
	}

	var err error
	if actor.IsShelter() {
		err = e.profiles.DeleteShelter(ctx, actor.ID)
	} else {
		err = e.profiles.DeleteUser(ctx, actor.ID)
	}
	if err != nil {
		log.Printf("delete profile %s stopped after step %q: %v", actor.ID, step, err)
		return storeErr(err)
	}
	step = "profile document deleted"

	// An already-missing row means a retried partial delete; carry on.
	if err := e.accounts.Delete(actor.ID); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("delete profile %s stopped after step %q: %v", actor.ID, step, err)
		return storeErr(err)
	}
	step = "account row deleted"

	if e.revoker != nil {
		if err := e.revoker.DeleteUser(ctx, actor.ID); err != nil {
			log.Printf("delete profile %s stopped after step %q: %v", actor.ID, step, err)
			return storeErr(err)
		}
		step = "credential revoked"
	}

	log.Printf("profile %s deleted (last completed step: %s)", actor.ID, step)
	return nil
}
