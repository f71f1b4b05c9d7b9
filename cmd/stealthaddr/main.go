package main

import (
	"fmt"
	"os"

	stealthaddr "github.com/shadowproto/stealthaddr"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	switch os.Args[1] {
	case "new":
		cmdNew()
	case "decode":
		if len(os.Args) != 3 {
			fmt.Println("Specify a stealth address to decode")
			return
		}
		cmdDecode(os.Args[2])
	case "export":
		if len(os.Args) != 3 {
			fmt.Println("Specify a stealth address secret export to decode")
			return
		}
		cmdImport(os.Args[2])
	default:
		usage()
	}
}

func usage() {
	fmt.Println("usage: stealthaddr new")
	fmt.Println("       stealthaddr decode <address>")
	fmt.Println("       stealthaddr export <secret-export>")
}

func cmdNew() {
	a, e := stealthaddr.GenerateStealthAddress()
	if e != nil {
		println(e.Error())
		return
	}
	defer a.Zeroize()

	fmt.Println("Address:", a.EncodePublished())
	export, e := a.ExportSecret()
	if e != nil {
		println(e.Error())
		return
	}
	fmt.Println("Secret :", export)
}

func cmdDecode(s string) {
	a, e := stealthaddr.DecodePublished(s)
	if e != nil {
		println(e.Error())
		return
	}
	fmt.Println("Options:", fmt.Sprintf("0x%02x", a.Options))
	fmt.Println("scanKey:", fmt.Sprintf("%x", a.ScanPubkey))
	fmt.Println("spndKey:", fmt.Sprintf("%x", a.SpendPubkey))
}

func cmdImport(s string) {
	a, e := stealthaddr.ImportSecret(s)
	if e != nil {
		println(e.Error())
		return
	}
	defer a.Zeroize()

	fmt.Println("scanKey:", fmt.Sprintf("%x", a.ScanPubkey))
	fmt.Println("scanSec:", fmt.Sprintf("%x", *a.ScanSecret))
	fmt.Println("spndKey:", fmt.Sprintf("%x", a.SpendPubkey))
	fmt.Println("spndSec:", fmt.Sprintf("%x", *a.SpendSecret))
}
