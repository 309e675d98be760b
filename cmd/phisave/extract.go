package main

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/shiroemons/go-phirks/pkg/crypto"
	"github.com/shiroemons/go-phirks/pkg/savearc"
)

// extractOptions は抽出の設定です
type extractOptions struct {
	outDir string
	raw    bool     // gameRecord を復号せずに書き出す
	only   []string // 空なら全エントリ
}

// 抽出ジョブを表す構造体
type extractJob struct {
	entry   savearc.ArchiveEntry
	outPath string
}

// 抽出結果
type extractResult struct {
	entryName string
	err       error
}

// collectJobs はアーカイブを列挙して抽出ジョブを作ります
func collectJobs(arc savearc.Archive, opts extractOptions) (jobs []extractJob, notFound []string, err error) {
	if err := os.MkdirAll(opts.outDir, 0755); err != nil {
		return nil, nil, fmt.Errorf("出力ディレクトリを作成できません: %w", err)
	}

	extractSet := make(map[string]bool, len(opts.only))
	for _, name := range opts.only {
		extractSet[name] = false
	}

	if !arc.EnumFirst() {
		return nil, opts.only, fmt.Errorf("アーカイブにエントリがありません")
	}

	for do := true; do; do = arc.EnumNext() {
		name := arc.GetEntryName()
		if len(extractSet) > 0 {
			if _, ok := extractSet[name]; !ok {
				continue
			}
			extractSet[name] = true
		}

		// アーカイブの外を指すエントリ名は書き出さない
		if !filepath.IsLocal(name) {
			fmt.Fprintf(os.Stderr, "不正なエントリ名のためスキップします: %s\n", name)
			continue
		}

		outPath := filepath.Join(opts.outDir, name)
		if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
			return nil, nil, fmt.Errorf("ディレクトリを作成できません %s: %w", filepath.Dir(outPath), err)
		}
		jobs = append(jobs, extractJob{entry: arc.GetEntry(), outPath: outPath})
	}

	for _, name := range opts.only {
		if !extractSet[name] {
			notFound = append(notFound, name)
		}
	}
	return jobs, notFound, nil
}

// 順次処理で抽出を実行
func extractArchiveSequential(arc savearc.Archive, opts extractOptions) (successCount int, notFound []string, err error) {
	jobs, notFound, err := collectJobs(arc, opts)
	if err != nil {
		return 0, notFound, err
	}

	for _, job := range jobs {
		if extractErr := writeEntry(job, opts.raw); extractErr != nil {
			fmt.Fprintf(os.Stderr, "抽出に失敗しました: %s - %v\n", job.entry.GetEntryName(), extractErr)
			if err == nil {
				err = fmt.Errorf("抽出エラー: %s (%w)", job.entry.GetEntryName(), extractErr)
			}
			continue
		}
		successCount++
		if *debugFlag {
			fmt.Printf("成功: %s\n", job.entry.GetEntryName())
		}
	}
	return successCount, notFound, err
}

// 並列処理で抽出を実行
func extractArchiveParallel(arc savearc.Archive, opts extractOptions, numWorkers int) (successCount int, notFound []string, err error) {
	if numWorkers <= 0 {
		numWorkers = 4 // デフォルトのワーカー数
	}

	jobList, notFound, err := collectJobs(arc, opts)
	if err != nil {
		return 0, notFound, err
	}

	jobs := make(chan extractJob, numWorkers*2)
	results := make(chan extractResult, numWorkers*2)

	// ワーカーを起動
	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				results <- extractResult{
					entryName: job.entry.GetEntryName(),
					err:       writeEntry(job, opts.raw),
				}
			}
		}()
	}

	// ジョブを投入
	go func() {
		for _, job := range jobList {
			jobs <- job
		}
		close(jobs)
		wg.Wait()
		close(results)
	}()

	// 結果の集計はこのgoroutineだけで行う
	for result := range results {
		if result.err != nil {
			fmt.Fprintf(os.Stderr, "抽出に失敗しました: %s - %v\n", result.entryName, result.err)
			if err == nil { // 最初のエラーを保持
				err = fmt.Errorf("抽出エラー: %s (%w)", result.entryName, result.err)
			}
			continue
		}
		successCount++
		if *debugFlag {
			fmt.Printf("成功: %s\n", result.entryName)
		}
	}

	return successCount, notFound, err
}

// writeEntry はエントリを1つ書き出します
// gameRecord は raw でなければ復号した平文を書き出します
func writeEntry(job extractJob, raw bool) error {
	if job.entry.GetEntryName() == savearc.GameRecordEntry && !raw {
		var buf bytes.Buffer
		if err := job.entry.Extract(&buf); err != nil {
			return err
		}
		plain, err := crypto.DecryptRecord(buf.Bytes())
		if err != nil {
			return err
		}
		return os.WriteFile(job.outPath, plain, 0644)
	}

	outFile, err := os.Create(job.outPath)
	if err != nil {
		return err
	}

	// バッファ付きライターを使用
	writer := bufio.NewWriter(outFile)
	err = job.entry.Extract(writer)
	if flushErr := writer.Flush(); err == nil {
		err = flushErr
	}
	if closeErr := outFile.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(job.outPath)
	}
	return err
}
