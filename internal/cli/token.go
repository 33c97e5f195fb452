package cli

import (
	"fmt"

	"github.com/julianstephens/weekwise/internal/feedtoken"
	"github.com/julianstephens/weekwise/internal/keyring"
)

type TokenCreateCmd struct{}

func (c *TokenCreateCmd) Run(ctx *Context) error {
	secret, err := keyring.EnsureFeedSecret()
	if err != nil {
		return err
	}

	token, expiresAt, err := feedtoken.New(secret).Issue(ctx.UserID)
	if err != nil {
		return err
	}

	fmt.Println(token)
	fmt.Printf("Expires: %s\n", expiresAt.Format("2006-01-02"))
	return nil
}

type TokenVerifyCmd struct {
	Token string `arg:"" help:"Feed token to verify."`
}

func (c *TokenVerifyCmd) Run(ctx *Context) error {
	secret, err := keyring.GetFeedSecret()
	if err != nil {
		return err
	}

	userID, ok := feedtoken.New(secret).Verify(c.Token)
	if !ok {
		return fmt.Errorf("token is invalid or expired")
	}

	fmt.Printf("Valid token for user: %s\n", userID)
	return nil
}
