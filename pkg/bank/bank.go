package bank

import (
	"context"
	"crypto/ed25519"
	"sync"
	"time"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/code-payments/reward-center/pkg/bank/accounts"
	"github.com/code-payments/reward-center/pkg/metrics"
	"github.com/code-payments/reward-center/pkg/solana"
	"github.com/code-payments/reward-center/pkg/solana/system"
	"github.com/code-payments/reward-center/pkg/solana/token"
	"github.com/code-payments/reward-center/pkg/solana/tokenmetadata"
	sync_util "github.com/code-payments/reward-center/pkg/sync"
)

const (
	metricsStructName = "bank"

	transactionProcessedEventName = "BankTransactionProcessed"

	slotsPerEpoch = 432_000
)

var (
	ErrAccountNotFound  = accounts.ErrNotFound
	ErrProgramExists    = errors.New("program already registered")
	ErrInvalidProgramID = errors.New("invalid program id")
)

// Result is the outcome of a processed transaction. It's returned for failed
// transactions too, so the program logs can be inspected.
type Result struct {
	Signature solana.Signature
	Slot      uint64
	Fee       uint64
	Logs      []string
}

// Bank is a single node ledger. It executes signed transactions against the
// account store, committing every change a transaction makes or none of them.
type Bank struct {
	log   *logrus.Entry
	conf  *conf
	store accounts.Store
	locks *sync_util.StripedLock

	programsMu sync.RWMutex
	programs   map[string]Program

	// stateMu guards the slot and blockhash queue. Transactions hold it for
	// reading while they execute, so a slot can't advance mid transaction.
	stateMu     sync.RWMutex
	slot        uint64
	blockhashes *blockhashQueue
	nowFn       func() time.Time

	statusCache *statusCache
}

// New returns a Bank over store with the system, token, associated token
// account and token metadata programs registered.
func New(ctx context.Context, store accounts.Store, configProvider ConfigProvider) (*Bank, error) {
	conf := configProvider()

	b := &Bank{
		log:         logrus.StandardLogger().WithField("type", "bank"),
		conf:        conf,
		store:       store,
		locks:       sync_util.NewStripedLock(uint(conf.lockStripes.Get(ctx))),
		programs:    make(map[string]Program),
		blockhashes: newBlockhashQueue(nextBlockhash(solana.Blockhash{}, 0)),
		nowFn:       time.Now,
		statusCache: newStatusCache(uint(conf.statusCacheCapacity.Get(ctx))),
	}

	builtins := []struct {
		id      ed25519.PublicKey
		program Program
	}{
		{system.ProgramKey[:], systemProgram{}},
		{token.ProgramKey, tokenProgram{}},
		{token.AssociatedTokenAccountProgramKey, associatedTokenProgram{}},
		{tokenmetadata.PROGRAM_ID, ownerOnlyProgram{name: "token metadata"}},
	}
	for _, builtin := range builtins {
		if err := b.RegisterProgram(ctx, builtin.id, builtin.program); err != nil {
			return nil, errors.Wrapf(err, "error registering builtin %s", base58.Encode(builtin.id))
		}
	}

	return b, nil
}

// RegisterProgram makes program executable at id. The program account is
// written to the store so transactions can reference it.
func (b *Bank) RegisterProgram(ctx context.Context, id ed25519.PublicKey, program Program) error {
	if len(id) != ed25519.PublicKeySize {
		return ErrInvalidProgramID
	}

	b.programsMu.Lock()
	defer b.programsMu.Unlock()

	if _, ok := b.programs[string(id)]; ok {
		return ErrProgramExists
	}

	unlock := b.locks.LockSet([][]byte{id}, nil)
	defer unlock()

	programAccount := &Account{
		Lamports:   1,
		Owner:      NativeLoader,
		Executable: true,
	}
	if err := b.store.Apply(ctx, b.Slot(), []*accounts.Record{toRecord(id, programAccount)}, nil); err != nil {
		return errors.Wrap(err, "error storing program account")
	}

	b.programs[string(id)] = program
	return nil
}

func (b *Bank) getProgram(id ed25519.PublicKey) (Program, bool) {
	b.programsMu.RLock()
	defer b.programsMu.RUnlock()

	p, ok := b.programs[string(id)]
	return p, ok
}

// SetNowFunc overrides the source of the clock sysvar's unix timestamp.
func (b *Bank) SetNowFunc(nowFn func() time.Time) {
	b.stateMu.Lock()
	b.nowFn = nowFn
	b.stateMu.Unlock()
}

func (b *Bank) Slot() uint64 {
	b.stateMu.RLock()
	defer b.stateMu.RUnlock()
	return b.slot
}

// LatestBlockhash returns the blockhash new transactions should reference.
func (b *Bank) LatestBlockhash() solana.Blockhash {
	b.stateMu.RLock()
	defer b.stateMu.RUnlock()
	return b.blockhashes.latest()
}

// AdvanceSlot moves the ledger to the next slot with a new blockhash. The
// oldest blockhash expires once the queue is full, along with the record of
// the transactions that referenced it.
func (b *Bank) AdvanceSlot() uint64 {
	b.stateMu.Lock()
	defer b.stateMu.Unlock()

	b.slot++
	evicted := b.blockhashes.push(nextBlockhash(b.blockhashes.latest(), b.slot), b.slot)
	if evicted != nil {
		b.statusCache.purge(*evicted)
	}

	return b.slot
}

// GetAccount returns the committed state of an account. ErrAccountNotFound is
// returned if the account has no lamports.
func (b *Bank) GetAccount(ctx context.Context, address ed25519.PublicKey) (*Account, error) {
	record, err := b.store.Get(ctx, base58.Encode(address))
	if err != nil {
		return nil, err
	}
	return fromRecord(record)
}

// SetAccount overwrites an account outside of any transaction. Setting an
// account with zero lamports removes it.
func (b *Bank) SetAccount(ctx context.Context, address ed25519.PublicKey, account *Account) error {
	unlock := b.locks.LockSet([][]byte{address}, nil)
	defer unlock()

	if account.Lamports == 0 {
		return b.store.Apply(ctx, b.Slot(), nil, []string{base58.Encode(address)})
	}

	return b.store.Apply(ctx, b.Slot(), []*accounts.Record{toRecord(address, account)}, nil)
}

// Airdrop credits lamports to an account, creating it as a system account if
// it doesn't exist.
func (b *Bank) Airdrop(ctx context.Context, address ed25519.PublicKey, lamports uint64) error {
	unlock := b.locks.LockSet([][]byte{address}, nil)
	defer unlock()

	account := newEmptyAccount()
	record, err := b.store.Get(ctx, base58.Encode(address))
	switch err {
	case nil:
		account, err = fromRecord(record)
		if err != nil {
			return err
		}
	case accounts.ErrNotFound:
	default:
		return err
	}

	if account.Lamports+lamports < account.Lamports {
		return errors.New("airdrop overflows account balance")
	}
	account.Lamports += lamports

	return b.store.Apply(ctx, b.Slot(), []*accounts.Record{toRecord(address, account)}, nil)
}

// ProcessTransaction executes a signed transaction. Either every instruction
// succeeds and all changes commit, or the ledger is left untouched and a
// *solana.TransactionError is returned.
func (b *Bank) ProcessTransaction(ctx context.Context, txn *solana.Transaction) (*Result, error) {
	tracer := metrics.TraceMethodCall(ctx, metricsStructName, "ProcessTransaction")
	defer tracer.End()

	start := time.Now()
	result, err := b.processTransaction(ctx, txn)
	tracer.OnError(err)

	log := b.log.WithFields(logrus.Fields{
		"method":    "ProcessTransaction",
		"signature": result.Signature.String(),
		"slot":      result.Slot,
	})

	eventKvs := map[string]interface{}{
		"success":          err == nil,
		"instructionCount": len(txn.Message.Instructions),
		"durationMs":       time.Since(start).Milliseconds(),
	}

	if err != nil {
		var txnErr *solana.TransactionError
		if errors.As(err, &txnErr) {
			eventKvs["errorKey"] = string(txnErr.ErrorKey())
		}
		log.WithError(err).Info("transaction failed")
	} else {
		log.WithField("fee", result.Fee).Debug("transaction committed")
	}
	metrics.RecordEvent(ctx, transactionProcessedEventName, eventKvs)

	return result, err
}

func (b *Bank) processTransaction(ctx context.Context, txn *solana.Transaction) (*Result, error) {
	result := &Result{}

	if err := txn.Sanitize(); err != nil {
		return result, solana.NewTransactionErrorWithCause(solana.TransactionErrorSanitizeFailure, err)
	}
	result.Signature = txn.Signature()

	if !b.conf.disableSignatureVerification.Get(ctx) {
		if err := txn.VerifySignatures(); err != nil {
			return result, solana.NewTransactionErrorWithCause(solana.TransactionErrorSignatureFailure, err)
		}
	}

	b.stateMu.RLock()
	defer b.stateMu.RUnlock()

	result.Slot = b.slot
	if !b.blockhashes.contains(txn.Message.RecentBlockhash) {
		return result, solana.NewTransactionError(solana.TransactionErrorBlockhashNotFound)
	}

	msg := &txn.Message

	var writable, readonly [][]byte
	for i, key := range msg.Accounts {
		if msg.IsWritable(i) {
			writable = append(writable, key)
		} else {
			readonly = append(readonly, key)
		}
	}
	unlock := b.locks.LockSet(writable, readonly)
	defer unlock()

	// Checked under the account locks, since a duplicate necessarily write
	// locks the same fee payer
	if b.statusCache.contains(result.Signature) {
		return result, solana.NewTransactionError(solana.TransactionErrorAlreadyProcessed)
	}

	clock := b.clockLocked()
	rent := b.rent(ctx)

	sb, err := b.loadSandbox(ctx, msg.Accounts, &clock, &rent)
	if err != nil {
		return result, err
	}

	fee := uint64(len(txn.Signatures)) * b.conf.lamportsPerSignature.Get(ctx)
	payer, _ := sb.get(msg.Payer())
	if !sb.persisted(msg.Payer()) {
		return result, solana.NewTransactionError(solana.TransactionErrorAccountNotFound)
	}
	if !payer.IsOwnedBy(system.ProgramKey[:]) || len(payer.Data) > 0 {
		return result, solana.NewTransactionError(solana.TransactionErrorInvalidAccountForFee)
	}
	if payer.Lamports < fee {
		return result, solana.NewTransactionError(solana.TransactionErrorInsufficientFundsForFee)
	}

	instructions, err := msg.DecompileInstructions()
	if err != nil {
		return result, solana.NewTransactionErrorWithCause(solana.TransactionErrorSanitizeFailure, err)
	}

	tctx := &txnContext{
		ctx:      ctx,
		bank:     b,
		sandbox:  sb,
		clock:    clock,
		rent:     rent,
		maxDepth: int(b.conf.maxInvokeDepth.Get(ctx)),
	}

	for i, ix := range instructions {
		programAccount, _ := sb.get(ix.Program)
		if _, ok := b.getProgram(ix.Program); !ok || !programAccount.Executable {
			result.Logs = tctx.logs
			return result, solana.NewTransactionErrorWithCause(
				solana.TransactionErrorInvalidProgramForExecution,
				errors.Errorf("instruction %d: %s", i, base58.Encode(ix.Program)),
			)
		}

		infos := make([]*AccountInfo, len(ix.Accounts))
		for j, meta := range ix.Accounts {
			account, _ := sb.get(meta.PublicKey)
			infos[j] = &AccountInfo{
				Key:        meta.PublicKey,
				IsSigner:   meta.IsSigner,
				IsWritable: meta.IsWritable,
				Account:    account,
			}
		}

		if err := tctx.execute(ix.Program, infos, ix.Data); err != nil {
			result.Logs = tctx.logs
			return result, solana.TransactionErrorFromInstructionError(&solana.InstructionError{
				Index: i,
				Err:   err,
			})
		}
	}
	result.Logs = tctx.logs

	// Instructions may have spent what was reserved for the fee
	if payer.Lamports < fee {
		return result, solana.NewTransactionError(solana.TransactionErrorInsufficientFundsForFee)
	}
	payer.Lamports -= fee

	if err := checkRent(sb, &rent); err != nil {
		return result, err
	}

	if err := ctx.Err(); err != nil {
		return result, err
	}

	updates, deletes := sb.diff()
	if err := b.store.Apply(ctx, b.slot, updates, deletes); err != nil {
		return result, errors.Wrap(err, "error committing transaction")
	}

	b.statusCache.add(msg.RecentBlockhash, result.Signature)

	result.Fee = fee
	return result, nil
}

func (b *Bank) loadSandbox(ctx context.Context, keys []ed25519.PublicKey, clock *system.ClockAccount, rent *system.RentAccount) (*sandbox, error) {
	addresses := make([]string, len(keys))
	for i, key := range keys {
		addresses[i] = base58.Encode(key)
	}

	records, err := b.store.GetMany(ctx, addresses...)
	if err != nil {
		return nil, errors.Wrap(err, "error loading accounts")
	}

	byAddress := make(map[string]*accounts.Record, len(records))
	for _, record := range records {
		byAddress[record.Address] = record
	}

	sb := newSandbox()
	for i, key := range keys {
		switch {
		case key.Equal(system.ClockSysVar):
			sb.load(key, sysvarAccount(clock.Marshal()), false)
		case key.Equal(system.RentSysVar):
			sb.load(key, sysvarAccount(rent.Marshal()), false)
		default:
			record, ok := byAddress[addresses[i]]
			if !ok {
				sb.load(key, newEmptyAccount(), false)
				continue
			}

			account, err := fromRecord(record)
			if err != nil {
				return nil, errors.Wrapf(err, "invalid stored account %s", addresses[i])
			}
			sb.load(key, account, true)
		}
	}
	return sb, nil
}

// checkRent rejects commits that leave a funded account below the rent exempt
// minimum. An account that was already below it may only shrink its balance
// without growing its data.
func checkRent(sb *sandbox, rent *system.RentAccount) error {
	for _, entry := range sb.changed() {
		post := entry.current
		if post.Lamports == 0 {
			continue
		}

		if post.Lamports >= rent.MinimumBalance(uint64(len(post.Data))) {
			continue
		}

		pre := entry.original
		wasRentPaying := pre.Lamports > 0 && pre.Lamports < rent.MinimumBalance(uint64(len(pre.Data)))
		if wasRentPaying && post.Lamports <= pre.Lamports && len(post.Data) == len(pre.Data) {
			continue
		}

		return solana.NewTransactionErrorWithCause(
			solana.TransactionErrorInsufficientFundsForRent,
			errors.Errorf("account %s", base58.Encode(entry.key)),
		)
	}
	return nil
}

// clockLocked must be called with stateMu held.
func (b *Bank) clockLocked() system.ClockAccount {
	now := b.nowFn().Unix()
	epoch := b.slot / slotsPerEpoch
	return system.ClockAccount{
		Slot:                b.slot,
		EpochStartTimestamp: now,
		Epoch:               epoch,
		LeaderScheduleEpoch: epoch + 1,
		UnixTimestamp:       now,
	}
}

func (b *Bank) rent(ctx context.Context) system.RentAccount {
	return system.RentAccount{
		LamportsPerByteYear: b.conf.rentLamportsPerByteYear.Get(ctx),
		ExemptionThreshold:  float64(b.conf.rentExemptionYears.Get(ctx)),
	}
}

// Rent returns the rent parameters currently in effect.
func (b *Bank) Rent(ctx context.Context) system.RentAccount {
	return b.rent(ctx)
}

func sysvarAccount(data []byte) *Account {
	return &Account{
		Lamports: 1,
		Data:     data,
		Owner:    system.SysvarOwner,
	}
}
