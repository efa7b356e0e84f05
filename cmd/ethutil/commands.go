package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math/big"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/eth2030/ethutil/common"
	"github.com/eth2030/ethutil/core/types"
	"github.com/eth2030/ethutil/crypto"
	"github.com/eth2030/ethutil/log"
	"github.com/eth2030/ethutil/metrics"
)

// app carries the resolved configuration and output streams of one run.
type app struct {
	stdout io.Writer
	stderr io.Writer

	cfgPath string
	flags   Config

	cfg     Config
	chainID *big.Int
	log     *log.Logger
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr, flags: DefaultConfig()}

	root := &cobra.Command{
		Use:               "ethutil",
		Short:             "Ethereum account primitives",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error { return usageError{err} })

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgPath, "config", "", "TOML config file")
	pf.StringVar(&a.flags.ChainID, "chainid", a.flags.ChainID, "chain id for EIP-155 signatures and EIP-1191 checksums")
	pf.BoolVar(&a.flags.Homestead, "homestead", a.flags.Homestead, "reject high-s signatures when validating")
	pf.IntVar(&a.flags.Verbosity, "verbosity", a.flags.Verbosity, "log level 0-5 (0=errors, 5=trace)")
	pf.StringVar(&a.flags.LogFormat, "log.format", a.flags.LogFormat, "log format (terminal, logfmt, json)")

	root.AddCommand(
		a.addressCmd(),
		a.checksumCmd(),
		a.keccakCmd(),
		a.signCmd(),
		a.recoverCmd(),
		a.rpcsigCmd(),
		a.accountCmd(),
		a.versionCmd(),
	)
	return root
}

// setup merges the config file and flags, then installs the logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := LoadConfig(a.cfgPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("chainid") {
		cfg.ChainID = a.flags.ChainID
	}
	if flags.Changed("homestead") {
		cfg.Homestead = a.flags.Homestead
	}
	if flags.Changed("verbosity") {
		cfg.Verbosity = a.flags.Verbosity
	}
	if flags.Changed("log.format") {
		cfg.LogFormat = a.flags.LogFormat
	}
	if err := cfg.Validate(); err != nil {
		return usageError{err}
	}
	a.cfg = cfg
	a.chainID, _ = cfg.ChainIDBig()

	logger, err := log.NewFormat(a.stderr, cfg.LogFormat, log.VerbosityToLevel(cfg.Verbosity))
	if err != nil {
		return usageError{err}
	}
	a.log = logger.Module("cli").With("cmd", cmd.Name())
	a.log.Debug("Configuration resolved", "config", a.cfgPath, "chainid", cfg.ChainID, "homestead", cfg.Homestead)
	return nil
}

func (a *app) println(v any) {
	fmt.Fprintln(a.stdout, v)
}

func (a *app) printJSON(v any) error {
	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// parseBig parses a decimal or 0x-prefixed hex integer.
func parseBig(s string) (*big.Int, error) {
	if common.Has0xPrefix(s) {
		b, err := common.FromHex(s)
		if err != nil {
			return nil, err
		}
		return new(big.Int).SetBytes(b), nil
	}
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, errors.Wrapf(common.ErrInvalidInput, "not an integer: %q", s)
	}
	return n, nil
}

// ---------------------------------------------------------------------------
// address
// ---------------------------------------------------------------------------

func (a *app) addressCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "address",
		Short: "Derive account and contract addresses",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "pub <pubkey>",
			Short: "Address of a public key (64-byte, SEC1 or compressed)",
			Args:  exactArgs(1),
			RunE: func(_ *cobra.Command, args []string) error {
				pub, err := common.FromHex(args[0])
				if err != nil {
					return err
				}
				raw, err := crypto.ImportPublic(pub)
				if err != nil {
					return err
				}
				addr, err := crypto.PubkeyToAddress(raw)
				if err != nil {
					return err
				}
				a.println(addr.ChecksumHex(nil))
				return nil
			},
		},
		&cobra.Command{
			Use:   "priv <privkey>",
			Short: "Address of a private key",
			Args:  exactArgs(1),
			RunE: func(_ *cobra.Command, args []string) error {
				key, err := common.FromHex(args[0])
				if err != nil {
					return err
				}
				addr, err := crypto.PrivateToAddress(key)
				if err != nil {
					return err
				}
				a.println(addr.ChecksumHex(nil))
				return nil
			},
		},
		&cobra.Command{
			Use:   "create <from> <nonce>",
			Short: "Contract address created by CREATE",
			Args:  exactArgs(2),
			RunE: func(_ *cobra.Command, args []string) error {
				from, err := types.ParseAddress(args[0])
				if err != nil {
					return err
				}
				nonce, err := parseBig(args[1])
				if err != nil {
					return err
				}
				addr, err := crypto.CreateAddress(from, nonce)
				if err != nil {
					return err
				}
				a.log.Debug("Derived CREATE address", "from", from, "nonce", nonce)
				a.println(addr.ChecksumHex(nil))
				return nil
			},
		},
		&cobra.Command{
			Use:   "create2 <from> <salt> <initcode>",
			Short: "Contract address created by CREATE2",
			Args:  exactArgs(3),
			RunE: func(_ *cobra.Command, args []string) error {
				from, err := types.ParseAddress(args[0])
				if err != nil {
					return err
				}
				salt, err := common.FromHex(args[1])
				if err != nil {
					return err
				}
				code, err := common.FromHex(args[2])
				if err != nil {
					return err
				}
				addr, err := crypto.CreateAddress2(from, salt, code)
				if err != nil {
					return err
				}
				a.log.Debug("Derived CREATE2 address", "from", from, "codelen", len(code))
				a.println(addr.ChecksumHex(nil))
				return nil
			},
		},
	)
	return cmd
}

// ---------------------------------------------------------------------------
// checksum
// ---------------------------------------------------------------------------

func (a *app) checksumCmd() *cobra.Command {
	var verify bool
	cmd := &cobra.Command{
		Use:   "checksum <address>",
		Short: "EIP-55 checksum of an address (EIP-1191 with --chainid)",
		Args:  exactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if verify {
				a.println(types.IsValidChecksumAddress(args[0], a.chainID))
				return nil
			}
			sum, err := types.ToChecksumAddress(args[0], a.chainID)
			if err != nil {
				return err
			}
			a.println(sum)
			return nil
		},
	}
	cmd.Flags().BoolVar(&verify, "verify", false, "report whether the address already carries a valid checksum")
	return cmd
}

// ---------------------------------------------------------------------------
// keccak
// ---------------------------------------------------------------------------

func (a *app) keccakCmd() *cobra.Command {
	var (
		bits    int
		hexData bool
	)
	cmd := &cobra.Command{
		Use:   "keccak <data>",
		Short: "Keccak digest of a UTF-8 string (or hex data with --hex)",
		Args:  exactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			var (
				digest []byte
				err    error
			)
			if hexData {
				digest, err = crypto.KeccakFromHex(args[0], bits)
			} else {
				digest, err = crypto.KeccakFromString(args[0], bits)
			}
			if err != nil {
				return err
			}
			a.println(common.Bytes2Hex(digest))
			return nil
		},
	}
	cmd.Flags().IntVar(&bits, "bits", 256, "digest width: 224, 256, 384 or 512")
	cmd.Flags().BoolVar(&hexData, "hex", false, "treat the argument as 0x-prefixed hex")
	return cmd
}

// ---------------------------------------------------------------------------
// sign / recover
// ---------------------------------------------------------------------------

type signatureJSON struct {
	V     string `json:"v"`
	R     string `json:"r"`
	S     string `json:"s"`
	RPC   string `json:"rpc,omitempty"`
	Valid *bool  `json:"valid,omitempty"`
}

func newSignatureJSON(sig *crypto.Signature) signatureJSON {
	out := signatureJSON{
		V: sig.V.String(),
		R: common.Bytes2Hex(sig.R[:]),
		S: common.Bytes2Hex(sig.S[:]),
	}
	if rpc, err := crypto.ToRpcSig(sig.V, sig.R[:], sig.S[:]); err == nil {
		out.RPC = rpc
	}
	return out
}

func (a *app) signCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sign <hash> <privkey>",
		Short: "Sign a 32-byte hash (EIP-155 V with --chainid)",
		Args:  exactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			hash, err := common.FromHex(args[0])
			if err != nil {
				return err
			}
			key, err := common.FromHex(args[1])
			if err != nil {
				return err
			}
			sig, err := crypto.Sign(hash, key, a.chainID)
			if err != nil {
				return err
			}
			return a.printJSON(newSignatureJSON(sig))
		},
	}
}

func (a *app) recoverCmd() *cobra.Command {
	var cacheSize int
	cmd := &cobra.Command{
		Use:   "recover <hash> <sig> [sig...]",
		Short: "Recover the signer of each 65-byte R || S || V signature",
		Args:  minArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := common.FromHex(args[0])
			if err != nil {
				return err
			}
			reqs := make([]crypto.RecoverRequest, 0, len(args)-1)
			for i, s := range args[1:] {
				sig, err := crypto.FromRpcSig(s)
				if err != nil {
					return errors.Wrapf(err, "signature %d", i)
				}
				reqs = append(reqs, crypto.RecoverRequest{Hash: hash, Sig: sig})
			}
			cache := crypto.NewRecoveryCache(cacheSize)
			addrs, err := crypto.NewRecoverer(cache, 0).RecoverAddresses(cmd.Context(), reqs)
			if err != nil {
				return err
			}
			a.log.Debug("Recovered signers", "count", len(addrs), "cached", cache.Hits(), "metrics", metrics.DefaultRegistry.Snapshot())
			for _, addr := range addrs {
				a.println(addr.ChecksumHex(nil))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&cacheSize, "cache", crypto.DefaultRecoveryCacheSize, "recovery cache entries")
	return cmd
}

// ---------------------------------------------------------------------------
// rpcsig
// ---------------------------------------------------------------------------

func (a *app) rpcsigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rpcsig",
		Short: "Pack and unpack eth_sign style signatures",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "pack <v> <r> <s>",
			Short: "Pack v (27 or 28), r and s into 65 bytes",
			Args:  exactArgs(3),
			RunE: func(_ *cobra.Command, args []string) error {
				v, err := parseBig(args[0])
				if err != nil {
					return err
				}
				r, err := common.FromHex(args[1])
				if err != nil {
					return err
				}
				s, err := common.FromHex(args[2])
				if err != nil {
					return err
				}
				sig, err := crypto.ToRpcSig(v, r, s)
				if err != nil {
					return err
				}
				a.println(sig)
				return nil
			},
		},
		&cobra.Command{
			Use:   "unpack <sig>",
			Short: "Unpack a 65-byte signature and validate it",
			Args:  exactArgs(1),
			RunE: func(_ *cobra.Command, args []string) error {
				sig, err := crypto.FromRpcSig(args[0])
				if err != nil {
					return err
				}
				out := newSignatureJSON(sig)
				out.RPC = ""
				valid := sig.IsValid(a.cfg.Homestead, nil)
				out.Valid = &valid
				return a.printJSON(out)
			},
		},
	)
	return cmd
}

// ---------------------------------------------------------------------------
// account
// ---------------------------------------------------------------------------

type accountJSON struct {
	Nonce       string `json:"nonce"`
	Balance     string `json:"balance"`
	StorageRoot string `json:"storageRoot"`
	CodeHash    string `json:"codeHash"`
	Empty       bool   `json:"empty"`
	Contract    bool   `json:"contract"`
}

func (a *app) accountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Encode and decode state accounts",
	}

	var (
		nonce, balance, root, codeHash string
		slimEncode                     bool
	)
	encode := &cobra.Command{
		Use:   "encode",
		Short: "RLP-encode an account; unset fields take their defaults",
		Args:  exactArgs(0),
		RunE: func(_ *cobra.Command, _ []string) error {
			var (
				data types.AccountData
				err  error
			)
			if nonce != "" {
				if data.Nonce, err = parseBig(nonce); err != nil {
					return err
				}
			}
			if balance != "" {
				if data.Balance, err = parseBig(balance); err != nil {
					return err
				}
			}
			if root != "" {
				data.StateRoot = root
			}
			if codeHash != "" {
				data.CodeHash = codeHash
			}
			acct, err := types.AccountFromData(data)
			if err != nil {
				return err
			}
			if slimEncode {
				a.println(common.Bytes2Hex(acct.SlimRLP()))
			} else {
				a.println(common.Bytes2Hex(acct.Serialize()))
			}
			return nil
		},
	}
	encode.Flags().StringVar(&nonce, "nonce", "", "nonce (decimal or 0x hex)")
	encode.Flags().StringVar(&balance, "balance", "", "balance in wei (decimal or 0x hex)")
	encode.Flags().StringVar(&root, "storage-root", "", "32-byte storage root")
	encode.Flags().StringVar(&codeHash, "code-hash", "", "32-byte code hash")
	encode.Flags().BoolVar(&slimEncode, "slim", false, "use the slim encoding (empty root and code hash omitted)")

	var slimDecode bool
	decode := &cobra.Command{
		Use:   "decode <rlp>",
		Short: "Decode an RLP-encoded account",
		Args:  exactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			b, err := common.FromHex(args[0])
			if err != nil {
				return err
			}
			var acct *types.Account
			if slimDecode {
				acct, err = types.AccountFromSlimRLP(b)
			} else {
				acct, err = types.AccountFromRLP(b)
			}
			if err != nil {
				return err
			}
			return a.printJSON(accountJSON{
				Nonce:       acct.Nonce.String(),
				Balance:     acct.Balance.String(),
				StorageRoot: acct.StateRoot.Hex(),
				CodeHash:    acct.CodeHash.Hex(),
				Empty:       acct.IsEmpty(),
				Contract:    acct.IsContract(),
			})
		},
	}
	decode.Flags().BoolVar(&slimDecode, "slim", false, "input uses the slim encoding")

	cmd.AddCommand(encode, decode)
	return cmd
}

// ---------------------------------------------------------------------------
// version
// ---------------------------------------------------------------------------

func (a *app) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version and exit",
		Args:  exactArgs(0),
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(a.stdout, "ethutil %s (commit %s)\n", version, commit)
		},
	}
}
