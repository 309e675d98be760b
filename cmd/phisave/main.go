package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shiroemons/go-phirks/internal/phirks/archive"
	"github.com/shiroemons/go-phirks/internal/phirks/config"
	"github.com/shiroemons/go-phirks/pkg/crypto"
	"github.com/shiroemons/go-phirks/pkg/record"
	"github.com/shiroemons/go-phirks/pkg/savearc"
)

var (
	extractFlag  = flag.Bool("x", false, "extract entries (gameRecord is written decrypted)")
	listFlag     = flag.Bool("l", false, "list entries")
	dumpFlag     = flag.Bool("dump", false, "print the decoded play records")
	rawFlag      = flag.Bool("raw", false, "write gameRecord as stored, without decrypting")
	packOutput   = flag.String("pack", "", "encrypt a plaintext gameRecord and write it as a save archive to this path")
	outputDir    = flag.String("o", ".", "output directory")
	debugFlag    = flag.Bool("d", false, "debug mode (show more info)")
	parallelFlag = flag.Bool("p", false, "use parallel extraction")
	workerCount  = flag.Int("w", 4, "number of worker threads for parallel extraction")
	versionFlag  = flag.Bool("v", false, "show version information")
)

// packMarker は -pack で暗号文の先頭に付ける1バイトです
const packMarker = 0x01

func main() {
	flag.Parse()
	config.HandleVersion("phisave", *versionFlag)

	// 引数チェック
	args := flag.Args()
	if len(args) < 1 {
		fmt.Println("使用方法: phisave [オプション] <セーブファイル> [エントリ名...]")
		fmt.Println("         phisave -pack <出力先> <平文のgameRecord>")
		fmt.Println("オプション:")
		flag.PrintDefaults()
		os.Exit(1)
	}

	// ファイル名
	filename := args[0]

	if *packOutput != "" {
		if err := packRecord(filename, *packOutput); err != nil {
			fmt.Fprintf(os.Stderr, "エラー: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("%s を %s に書き出しました\n", filename, *packOutput)
		return
	}

	// デバッグモードの場合、ファイル情報を表示
	if *debugFlag {
		printFileInfo(filename)
	}

	arc := savearc.NewZipArchive()
	if _, err := arc.Open(filename); err != nil {
		fmt.Fprintf(os.Stderr, "エラー: %v\n", err)
		os.Exit(1)
	}
	defer arc.Close()

	fmt.Printf("セーブファイルを開きました: %s\n", filename)

	// リストを表示する
	if *listFlag {
		listArchive(arc)
	}

	// 復号したプレイ記録を表示する
	if *dumpFlag {
		if err := dumpRecords(filename); err != nil {
			fmt.Fprintf(os.Stderr, "エラー: %v\n", err)
			os.Exit(1)
		}
	}

	// 抽出対象エントリ名を取得 (セーブファイル名の後の引数)
	entriesToExtract := []string{}
	if len(args) > 1 {
		entriesToExtract = args[1:]
	}

	// 抽出する (-x フラグまたはエントリ指定がある場合)
	if *extractFlag || len(entriesToExtract) > 0 {
		if len(entriesToExtract) > 0 {
			fmt.Printf("%d 個の指定されたエントリを抽出中...\n", len(entriesToExtract))
		} else {
			fmt.Println("アーカイブ内の全エントリを抽出中...")
		}

		opts := extractOptions{outDir: *outputDir, raw: *rawFlag, only: entriesToExtract}
		var count int
		var notFound []string
		var extractErr error

		if *parallelFlag {
			count, notFound, extractErr = extractArchiveParallel(arc, opts, *workerCount)
		} else {
			count, notFound, extractErr = extractArchiveSequential(arc, opts)
		}

		if extractErr != nil {
			fmt.Fprintf(os.Stderr, "抽出処理中にエラーが発生しました: %v\n", extractErr)
		}

		if len(notFound) > 0 {
			fmt.Fprintf(os.Stderr, "\n警告: 指定されたエントリのうち、以下は見つかりませんでした:\n")
			for _, f := range notFound {
				fmt.Fprintf(os.Stderr, "- %s\n", f)
			}
		}

		if extractErr == nil || count > 0 {
			fmt.Printf("\n%d 個のエントリを抽出しました\n", count)
		}
		if extractErr != nil && count == 0 {
			os.Exit(1)
		}
	}
}

// printFileInfo はファイルのサイズと先頭16バイトを表示します
func printFileInfo(filename string) {
	fileInfo, err := os.Stat(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ファイル情報の取得に失敗: %v\n", err)
		return
	}
	fmt.Printf("ファイル: %s\n", filename)
	fmt.Printf("サイズ: %d バイト\n", fileInfo.Size())
	fmt.Printf("更新時間: %v\n", fileInfo.ModTime())

	file, err := os.Open(filename)
	if err == nil {
		defer file.Close()
		header := make([]byte, 16)
		n, err := file.Read(header)
		if err == nil && n > 0 {
			fmt.Printf("ファイルヘッダ (hex): % x\n", header[:n])
		}
	}
	fmt.Println()
}

// アーカイブのリストを表示
func listArchive(arc savearc.Archive) {
	fmt.Println("アーカイブ内のエントリ一覧:")
	fmt.Println("----------------------------")
	fmt.Printf("%-32s %10s %10s\n", "エントリ名", "元サイズ", "圧縮サイズ")
	fmt.Println("----------------------------")

	if !arc.EnumFirst() {
		fmt.Println("エントリがありません")
		return
	}

	for do := true; do; do = arc.EnumNext() {
		fmt.Printf("%-32s %10d %10d\n",
			arc.GetEntryName(),
			arc.GetOriginalSize(),
			arc.GetCompressedSize())
	}
	fmt.Println("----------------------------")
}

// dumpRecords は gameRecord を復号して曲ごとの記録を表示します
func dumpRecords(filename string) error {
	loader := archive.NewLoader(config.NewDebugLogger(*debugFlag))
	save, err := loader.LoadSave(context.Background(), filename)
	if err != nil {
		return err
	}

	fmt.Printf("%d 曲分のプレイ記録:\n", len(save))
	for _, song := range save {
		fmt.Println(song.ID)
		for _, level := range song.Record {
			fc := ""
			if level.Record.FullCombo {
				fc = " FC"
			}
			fmt.Printf("  %-3s %7d %7.3f%%%s\n", level.Difficulty, level.Record.Score, level.Record.Accuracy, fc)
		}
	}
	return nil
}

// packRecord は平文の gameRecord を暗号化してセーブファイルとして書き出します
func packRecord(plainPath, outPath string) error {
	plain, err := os.ReadFile(plainPath)
	if err != nil {
		return err
	}
	// 書き出す前に平文として読めることを確認
	if _, err := record.Parse(plain); err != nil {
		return err
	}

	var buf bytes.Buffer
	entries := []savearc.Entry{{Name: savearc.GameRecordEntry, Data: crypto.EncryptRecord(plain, packMarker)}}
	if err := savearc.WriteArchive(&buf, entries); err != nil {
		return err
	}

	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(outPath, buf.Bytes(), 0644)
}
