package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/vouchervault/voucher-vault/internal/core/domain"
	"github.com/vouchervault/voucher-vault/internal/core/ports"
	"github.com/vouchervault/voucher-vault/internal/core/state"
)

const devModeSuffix = "/?mode=dev"

// Intent is an operator's request to log in or sign up as a role.
type Intent struct {
	Role domain.Role
	// BrandName is only used when a brand account has to be registered.
	BrandName string
	DevMode   bool
}

// BootstrapResult describes an established session.
type BootstrapResult struct {
	Session    ports.Session
	Role       domain.Role
	Registered bool
	Redirect   string
}

// SessionService turns a login intent into an active session held by the
// state store: wallet connection, account discovery, login or registration,
// and the cross-role check.
type SessionService struct {
	gateways ports.GatewayProvider
	wallet   ports.WalletProvider
	store    *state.Store
	notifier ports.Notifier
	activity ports.ActivityRepository
	loginCfg domain.LoginConfig
	log      zerolog.Logger
}

func NewSessionService(
	gateways ports.GatewayProvider,
	wallet ports.WalletProvider,
	store *state.Store,
	notifier ports.Notifier,
	activity ports.ActivityRepository,
	loginCfg domain.LoginConfig,
	log zerolog.Logger,
) *SessionService {
	if loginCfg.TTL <= 0 {
		loginCfg = domain.DefaultLoginConfig()
	}
	return &SessionService{
		gateways: gateways,
		wallet:   wallet,
		store:    store,
		notifier: notifier,
		activity: activity,
		loginCfg: loginCfg,
		log:      log,
	}
}

// Bootstrap runs the whole login-or-register flow once. Nothing is retried.
func (s *SessionService) Bootstrap(ctx context.Context, in Intent) (*BootstrapResult, error) {
	if !in.Role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrValidation, in.Role)
	}
	if !s.store.TryBeginBootstrap() {
		s.log.Warn().Str("role", string(in.Role)).Msg("bootstrap rejected, another login is running")
		notifyError(ctx, s.notifier, "A login is already in progress!", "Please wait for it to finish")
		return nil, domain.ErrBootstrapInFlight
	}
	defer s.store.EndBootstrap()

	if _, _, err := s.store.Session(); err == nil {
		notifyError(ctx, s.notifier, "You're already logged in!", "Log out before switching accounts")
		return nil, domain.ErrSessionActive
	}
	// An expired session is still sitting in the store until the sweeper runs.
	s.store.ExpireIfDue(s.now())

	gw, err := s.gateways.Gateway(ctx, in.DevMode)
	if err != nil {
		s.log.Error().Err(err).Msg("ledger client unavailable")
		notifyError(ctx, s.notifier, "Error connecting to the network! Please try again.", "")
		return nil, fmt.Errorf("bootstrap: %w", err)
	}

	ks, err := s.wallet.Connect(ctx)
	if err != nil {
		s.log.Warn().Err(err).Str("role", string(in.Role)).Msg("wallet connection failed")
		switch {
		case errors.Is(err, domain.ErrWalletUnavailable):
			notifyError(ctx, s.notifier, "No wallet found!", "Set up a wallet key to continue")
		default:
			notifyError(ctx, s.notifier, "Wallet connection rejected!", "")
		}
		return nil, fmt.Errorf("bootstrap: %w", err)
	}

	accounts, err := gw.Accounts(ctx, ks)
	if err != nil {
		s.log.Error().Err(err).Str("signer", ks.ID().String()).Msg("account discovery failed")
		notifyError(ctx, s.notifier, "Error fetching wallet accounts! Please try again.", "")
		return nil, fmt.Errorf("bootstrap: discover accounts: %w: %v", domain.ErrQueryFailed, err)
	}

	if len(accounts) > 0 {
		return s.login(ctx, gw, ks, accounts[0], in)
	}
	return s.register(ctx, gw, ks, in)
}

// Logout drops the session and every profile loaded for it.
func (s *SessionService) Logout() {
	s.store.Reset()
}

func (s *SessionService) login(ctx context.Context, gw ports.AuthGateway, ks ports.KeyStore, acc domain.WalletAccount, in Intent) (*BootstrapResult, error) {
	activity := domain.Activity{Kind: domain.ActivityLogin, Role: in.Role, Account: acc.ID.String()}

	sess, err := gw.Login(ctx, ks, acc.ID, s.loginCfg)
	if err != nil {
		s.log.Error().Err(err).Str("account", acc.ID.String()).Msg("login failed")
		notifyError(ctx, s.notifier, "Error logging in! Please try again.", "")
		activity.Detail = errText(err)
		record(ctx, s.activity, s.log, activity)
		return nil, fmt.Errorf("%w: %v", domain.ErrLoginFailed, err)
	}

	if s.registeredAsOpposite(ctx, sess, in.Role) {
		s.log.Warn().Str("account", acc.ID.String()).Str("role", string(in.Role)).Msg("role conflict, resetting state")
		n := newNotification(domain.NotifyError,
			fmt.Sprintf("This account is already registered as a %s!", in.Role.Opposite()),
			fmt.Sprintf("Please use another account to continue as %s", in.Role))
		n.Reload = true
		s.notifier.Notify(ctx, n)
		s.store.Reset()
		record(ctx, s.activity, s.log, domain.Activity{
			Kind:    domain.ActivityRoleConflict,
			Role:    in.Role,
			Account: acc.ID.String(),
		})
		return nil, domain.ErrRoleConflict
	}

	if err := s.establish(ctx, sess, in.Role, activity); err != nil {
		return nil, err
	}
	notifySuccess(ctx, s.notifier, "You've been logged in successfully!")
	activity.Succeeded = true
	record(ctx, s.activity, s.log, activity)
	s.log.Info().Str("account", acc.ID.String()).Str("role", string(in.Role)).Msg("logged in")

	return &BootstrapResult{Session: sess, Role: in.Role, Redirect: landing(in)}, nil
}

func (s *SessionService) register(ctx context.Context, gw ports.AuthGateway, ks ports.KeyStore, in Intent) (*BootstrapResult, error) {
	op := domain.Operation{Name: "register_as_user", Args: []any{}}
	if in.Role == domain.RoleBrand {
		name := strings.TrimSpace(in.BrandName)
		if name == "" {
			notifyError(ctx, s.notifier, "Name not found!", "Brand name is required for registration")
			return nil, fmt.Errorf("%w: brand name is required", domain.ErrValidation)
		}
		op = domain.Operation{Name: "register_as_brand", Args: []any{name}}
	}
	activity := domain.Activity{Kind: domain.ActivityRegister, Role: in.Role, Subject: in.BrandName}

	sess, err := gw.Register(ctx, ks, s.loginCfg, op)
	if err != nil {
		s.log.Error().Err(err).Str("role", string(in.Role)).Msg("registration failed")
		activity.Detail = errText(err)
		record(ctx, s.activity, s.log, activity)
		if domain.IsDuplicateKey(err) {
			notifyError(ctx, s.notifier, "Error registering your account!", "An account with this name already exists")
			return nil, fmt.Errorf("%w: %w", domain.ErrRegistrationFailed, domain.ErrDuplicateName)
		}
		notifyError(ctx, s.notifier, "Error registering your account! Please try again.", "")
		return nil, fmt.Errorf("%w: %v", domain.ErrRegistrationFailed, err)
	}

	activity.Account = sess.AccountID().String()
	if err := s.establish(ctx, sess, in.Role, activity); err != nil {
		return nil, err
	}
	notifySuccess(ctx, s.notifier, "You've registered successfully.")
	activity.Succeeded = true
	record(ctx, s.activity, s.log, activity)
	s.log.Info().Str("account", activity.Account).Str("role", string(in.Role)).Msg("registered")

	return &BootstrapResult{Session: sess, Role: in.Role, Registered: true, Redirect: landing(in)}, nil
}

// establish stores sess, reporting a refused write the way other bootstrap
// failures are reported.
func (s *SessionService) establish(ctx context.Context, sess ports.Session, role domain.Role, activity domain.Activity) error {
	err := s.store.Establish(sess, role)
	if err == nil {
		return nil
	}
	s.log.Warn().Err(err).Str("account", sess.AccountID().String()).Str("role", string(role)).Msg("session not stored")
	notifyError(ctx, s.notifier, "You're already logged in!", "Log out before switching accounts")
	activity.Detail = errText(err)
	record(ctx, s.activity, s.log, activity)
	return err
}

// registeredAsOpposite looks up the other role's record for the session's
// account. Query errors are logged and treated as "no conflict".
func (s *SessionService) registeredAsOpposite(ctx context.Context, sess ports.Session, role domain.Role) bool {
	name, key := profileQuery(role.Opposite())
	var raw json.RawMessage
	if err := sess.Query(ctx, name, map[string]any{key: sess.AccountID()}, &raw); err != nil {
		s.log.Warn().Err(err).Str("query", name).Msg("role check failed, continuing")
		return false
	}
	trimmed := strings.TrimSpace(string(raw))
	return trimmed != "" && trimmed != "null"
}

func (s *SessionService) now() time.Time {
	return time.Now()
}

// profileQuery returns the query name and account argument for a role's profile.
func profileQuery(role domain.Role) (name, accountArg string) {
	if role == domain.RoleBrand {
		return "get_brand", "brand_account_id"
	}
	return "get_user", "user_account_id"
}

func landing(in Intent) string {
	path := "/customer"
	if in.Role == domain.RoleBrand {
		path = "/dashboard"
	}
	if in.DevMode {
		path += devModeSuffix
	}
	return path
}
