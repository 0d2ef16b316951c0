package main

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/iov-one/barter"
	"github.com/iov-one/barter/crypto"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/ed25519"
)

// bech32Prefix is the human readable part of printed addresses.
const bech32Prefix = "barter"

func newKeygenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keygen",
		Short: "Generate a new private key",
		Long: `Generate a new private key.

When successful a new file with binary content containing private key is
created. This command fails if the private key file already exists.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := loadConfig(cmd.Flags())
			if err != nil {
				return err
			}
			if _, err := os.Stat(conf.Key); !os.IsNotExist(err) {
				// Do not allow to overwrite already existing private key.
				return fmt.Errorf("private key file %q already exists, delete this file and try again", conf.Key)
			}
			if err := os.MkdirAll(filepath.Dir(conf.Key), 0700); err != nil {
				return fmt.Errorf("cannot create key directory: %s", err)
			}
			key := crypto.GenPrivKeyEd25519()
			if err := ioutil.WriteFile(conf.Key, key.Ed25519, 0600); err != nil {
				return fmt.Errorf("cannot write private key: %s", err)
			}
			return printAddress(cmd, key.PublicKey().Address())
		},
	}
}

func newKeyaddrCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keyaddr",
		Short: "Print the address of the private key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := loadConfig(cmd.Flags())
			if err != nil {
				return err
			}
			key, err := loadKey(conf.Key)
			if err != nil {
				return err
			}
			return printAddress(cmd, key.PublicKey().Address())
		},
	}
}

func printAddress(cmd *cobra.Command, addr barter.Address) error {
	b32, err := addr.Bech32(bech32Prefix)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s\nbech32:%s\n", addr, b32)
	return nil
}

func loadKey(path string) (*crypto.PrivateKey, error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read private key file: %s", err)
	}
	if len(raw) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("invalid private key length: %d", len(raw))
	}
	return &crypto.PrivateKey{Ed25519: raw}, nil
}
