package command

import (
	"context"
	"fmt"

	"github.com/indiesound/artist-insights/internal/datasources"
	"github.com/indiesound/artist-insights/internal/domain"
)

type SaveProfileRequest struct {
	Identity domain.Identity
	Profile  domain.ProfileInput
}

// SaveProfile creates the signed-in user's profile on first save and updates it after.
// Optional fields left empty are cleared.
type SaveProfile struct {
	Querier    datasources.RecordQuerier
	Transactor datasources.Transactor
	Interlock  *Interlock
	Stamper    Stamper
}

func NewSaveProfile(store datasources.Store, interlock *Interlock) *SaveProfile {
	return &SaveProfile{
		Querier:    store,
		Transactor: store,
		Interlock:  interlock,
		Stamper:    DefaultStamper(),
	}
}

func (c *SaveProfile) Execute(ctx context.Context, req SaveProfileRequest) (domain.User, error) {
	if !req.Identity.Authenticated() {
		return domain.User{}, &domain.AuthRequiredError{Action: "edit your profile"}
	}

	profile := req.Profile.Normalized()
	if err := domain.ValidateProfileInput(profile); err != nil {
		return domain.User{}, err
	}

	fields, err := profileFields(profile)
	if err != nil {
		return domain.User{}, err
	}
	payload := fmt.Sprint(fields)

	return runExclusive(ctx, c.Interlock, "profile", req.Identity.ID, payload,
		func() (domain.User, error) {
			return c.save(ctx, req.Identity, profile, fields)
		})
}

// profileFields lists every editable user field, with nil marking a cleared field.
func profileFields(profile domain.ProfileInput) (datasources.Fields, error) {
	encoded, err := datasources.EncodeFields(domain.User{
		Username:    profile.Username,
		AvatarURL:   profile.AvatarURL,
		SocialLinks: profile.SocialLinks,
	})
	if err != nil {
		return nil, err
	}

	fields := datasources.Fields{
		"username":      encoded["username"],
		"avatarUrl":     encoded["avatarUrl"],
		"spotifyUrl":    encoded["spotifyUrl"],
		"instagramUrl":  encoded["instagramUrl"],
		"soundcloudUrl": encoded["soundcloudUrl"],
		"youtubeUrl":    encoded["youtubeUrl"],
		"tiktokUrl":     encoded["tiktokUrl"],
		"twitterUrl":    encoded["twitterUrl"],
		"bandcampUrl":   encoded["bandcampUrl"],
		"appleMusicUrl": encoded["appleMusicUrl"],
	}
	return fields, nil
}

func (c *SaveProfile) save(
	ctx context.Context,
	identity domain.Identity,
	profile domain.ProfileInput,
	fields datasources.Fields,
) (domain.User, error) {
	logger := domain.LoggerFromContext(ctx)
	spec := datasources.QuerySpec{domain.KindUser: {"id": identity.ID}}

	snap, err := c.Querier.Query(ctx, spec)
	if err != nil {
		return domain.User{}, fmt.Errorf("querying user: %w", err)
	}

	var op datasources.Operation
	if _, exists := snap.FindUser(identity.ID); exists {
		op = datasources.Operation{
			Kind:   domain.KindUser,
			ID:     identity.ID,
			Op:     datasources.OpUpdate,
			Fields: fields,
		}
	} else {
		_, now := c.Stamper.stamp()
		op, err = datasources.CreateOp(domain.User{
			ID:          identity.ID,
			Email:       identity.Email,
			Username:    profile.Username,
			AvatarURL:   profile.AvatarURL,
			SocialLinks: profile.SocialLinks,
			CreatedAt:   now,
		})
		if err != nil {
			return domain.User{}, err
		}
	}

	if err := commit(ctx, c.Transactor, datasources.Batch{op}); err != nil {
		return domain.User{}, err
	}
	logger.DebugContext(ctx, "saved profile", "op", op.Op)

	snap, err = c.Querier.Query(ctx, spec)
	if err != nil {
		return domain.User{}, fmt.Errorf("querying saved user: %w", err)
	}
	user, ok := snap.FindUser(identity.ID)
	if !ok {
		return domain.User{}, &domain.NotFoundError{Kind: domain.KindUser, ID: identity.ID}
	}
	return user, nil
}
