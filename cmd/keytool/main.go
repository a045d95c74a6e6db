// Command keytool manages the local sealbox key pair from the command line.
//
// Configuration is read from the environment (optionally via a .env file):
//
//	SEALBOX_STORAGE_DIR  directory for the file-backed key storage (default ~/.sealbox)
//	SEALBOX_KEY_TAG      storage tag for the local key (default library default)
//	SEALBOX_CURVE        "P-256" or "X25519" (default "P-256")
//
// Usage:
//
//	keytool show [raw|x963|der|pem]   print the local public key, creating the key if absent
//	keytool rotate                    delete the local key and generate a fresh one
//	keytool delete                    delete the local key
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	sealbox "github.com/sealbox/sealbox-go"
)

func main() {
	if len(os.Args) < 2 {
		fatal("usage: keytool <show|rotate|delete> [encoding]")
	}

	// A missing .env file is fine; the environment still applies.
	_ = godotenv.Load()

	agreement := newAgreement()

	switch os.Args[1] {
	case "show":
		encoding := sealbox.EncodingPEM
		if len(os.Args) > 2 {
			encoding = parseEncoding(os.Args[2])
		}
		show(agreement, encoding)
	case "rotate":
		if err := agreement.DeleteLocalKey(); err != nil {
			fatal("delete key: %v", err)
		}
		show(agreement, sealbox.EncodingPEM)
	case "delete":
		if err := agreement.DeleteLocalKey(); err != nil {
			fatal("delete key: %v", err)
		}
		fmt.Println("local key deleted")
	default:
		fatal("unknown command: %s", os.Args[1])
	}
}

func newAgreement() *sealbox.KeyAgreement {
	dir := os.Getenv("SEALBOX_STORAGE_DIR")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			fatal("resolve home directory: %v", err)
		}
		dir = filepath.Join(home, ".sealbox")
	}

	storage, err := sealbox.NewFileStorage(dir)
	if err != nil {
		fatal("open key storage: %v", err)
	}

	curve := sealbox.CurveP256
	if v := os.Getenv("SEALBOX_CURVE"); v != "" {
		curve = sealbox.Curve(v)
	}

	provider, err := sealbox.NewSoftwareKeyProvider(curve)
	if err != nil {
		fatal("create key provider: %v", err)
	}

	var opts []sealbox.Option
	if tag := os.Getenv("SEALBOX_KEY_TAG"); tag != "" {
		opts = append(opts, sealbox.WithStorageTag(tag))
	}

	agreement, err := sealbox.NewKeyAgreement(storage, provider, opts...)
	if err != nil {
		fatal("create key agreement: %v", err)
	}
	return agreement
}

func show(agreement *sealbox.KeyAgreement, encoding sealbox.KeyEncoding) {
	pub, err := agreement.LocalPublicKey(encoding)
	if err != nil {
		fatal("load public key: %v", err)
	}

	if encoding == sealbox.EncodingPEM {
		os.Stdout.Write(pub)
		return
	}
	fmt.Println(sealbox.ToBase64(pub))
}

func parseEncoding(name string) sealbox.KeyEncoding {
	switch name {
	case "raw":
		return sealbox.EncodingRaw
	case "x963":
		return sealbox.EncodingX963
	case "der":
		return sealbox.EncodingDER
	case "pem":
		return sealbox.EncodingPEM
	default:
		fatal("unknown encoding: %s", name)
		return ""
	}
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
