package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/montplusa/tictactoe/pkg/ai"
	"github.com/montplusa/tictactoe/pkg/game"
)

// 指定されたディレクトリ内の同じプレフィックスを持つファイルの最大連番を取得する
func findMaxSequenceNumber(dir, prefix string) (int, error) {
	// ディレクトリが存在しない場合は0を返す
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return 0, nil
	}

	files, err := os.ReadDir(dir)
	if err != nil {
		return 0, err
	}

	// プレフィックス_NNNNN.json の形式にマッチする正規表現
	pattern := regexp.MustCompile(fmt.Sprintf(`^%s_(\d{5})\.json$`, regexp.QuoteMeta(prefix)))
	maxSeq := 0

	for _, file := range files {
		if file.IsDir() {
			continue
		}

		matches := pattern.FindStringSubmatch(file.Name())
		if len(matches) == 2 {
			seq, err := strconv.Atoi(matches[1])
			if err != nil {
				continue
			}
			if seq > maxSeq {
				maxSeq = seq
			}
		}
	}

	return maxSeq, nil
}

// 対戦タスクの構造体
type battleTask struct {
	gameIndex int
	seqNum    int
}

// 対戦結果の構造体
type battleResult struct {
	gameIndex int
	result    game.BattleResult
}

type workerConfig struct {
	agents       [2]string
	opts         ai.Options
	seed         int64
	outputDir    string
	outputPrefix string
	noOutput     bool
}

// ワーカー関数
func worker(id int, cfg workerConfig, tasks <-chan battleTask, results chan<- battleResult, wg *sync.WaitGroup) {
	defer wg.Done()

	// エージェントの乱数はワーカーごとに分ける
	opts := cfg.opts
	rng := rand.New(rand.NewSource(cfg.seed + int64(id)))
	opts.Rand = rng

	a0, err := ai.New(cfg.agents[0], opts)
	if err != nil {
		fmt.Printf("エラー: %v\n", err)
		return
	}
	a1, err := ai.New(cfg.agents[1], opts)
	if err != nil {
		fmt.Printf("エラー: %v\n", err)
		return
	}

	for task := range tasks {
		gr := game.NewGameRunner(a0, a1)
		gr.SetRand(rng)
		result := gr.Run()

		if !cfg.noOutput {
			if err := writeResult(cfg.outputDir, cfg.outputPrefix, task.seqNum, result); err != nil {
				fmt.Printf("エラー: %v\n", err)
			}
		}

		results <- battleResult{
			gameIndex: task.gameIndex,
			result:    result,
		}

		fmt.Printf("対戦 %d が完了しました（ワーカー %d）\n", task.gameIndex, id)
	}
}

func writeResult(dir, prefix string, seq int, result game.BattleResult) error {
	// 結果をJSONに変換（インデントなし）
	jsonData, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("JSONの変換に失敗しました: %w", err)
	}

	// ファイル名の生成（5桁のゼロ詰め連番）
	filename := filepath.Join(dir, fmt.Sprintf("%s_%05d.json", prefix, seq))
	if err := os.WriteFile(filename, jsonData, 0644); err != nil {
		return fmt.Errorf("ファイルの書き込みに失敗しました: %w", err)
	}
	return nil
}

func main() {
	// コマンドライン引数の解析
	outputDir := flag.String("output", "output", "出力ディレクトリ名")
	outputPrefix := flag.String("output-prefix", "", "出力ファイル名のプレフィックス")
	noOutput := flag.Bool("no-output", false, "出力しない")
	games := flag.Int("games", 1, "実行する試合数")
	numWorkers := flag.Int("workers", runtime.NumCPU(), "ワーカー数")
	agent0 := flag.String("a0", "minimax", "エージェント0 (AI 側, +1)")
	agent1 := flag.String("a1", "random", "エージェント1 (Human 側, -1)")
	sims := flag.Int("mcts-sims", 1000, "mcts のシミュレーション回数")
	randomOpening := flag.Bool("random-opening", false, "minimax の初手をランダムにする")
	seed := flag.Int64("seed", time.Now().UnixNano(), "乱数シード")
	flag.Parse()

	// 出力プレフィックスが指定されていない場合はエラー
	if !*noOutput && *outputPrefix == "" {
		fmt.Println("エラー: --output-prefix は必須です")
		flag.Usage()
		os.Exit(1)
	}

	// エージェント名を先に検証する
	for _, name := range []string{*agent0, *agent1} {
		if _, err := ai.New(name, ai.Options{}); err != nil {
			fmt.Printf("エラー: %v\n", err)
			os.Exit(1)
		}
	}

	if !*noOutput {
		// 出力ディレクトリの作成
		err := os.MkdirAll(*outputDir, 0755)
		if err != nil {
			fmt.Printf("エラー: 出力ディレクトリの作成に失敗しました: %v\n", err)
			os.Exit(1)
		}
	}

	// 既存ファイルの最大連番を取得
	maxSeq, err := findMaxSequenceNumber(*outputDir, *outputPrefix)
	if err != nil {
		fmt.Printf("警告: 既存ファイルの確認中にエラーが発生しました: %v\n", err)
	}
	startSeq := maxSeq + 1
	fmt.Printf("連番 %05d から開始します\n", startSeq)

	fmt.Printf("%s vs %s を %d 回実行します（ワーカー数: %d）\n", *agent0, *agent1, *games, *numWorkers)

	cfg := workerConfig{
		agents:       [2]string{*agent0, *agent1},
		opts:         ai.Options{RandomOpening: *randomOpening, Simulations: *sims},
		seed:         *seed,
		outputDir:    *outputDir,
		outputPrefix: *outputPrefix,
		noOutput:     *noOutput,
	}

	// チャネルの作成
	tasks := make(chan battleTask, *games)
	results := make(chan battleResult, *games)

	// ワーカープールの作成
	var wg sync.WaitGroup
	for i := 0; i < *numWorkers; i++ {
		wg.Add(1)
		go worker(i, cfg, tasks, results, &wg)
	}

	// タスクの送信
	go func() {
		for i := 0; i < *games; i++ {
			tasks <- battleTask{
				gameIndex: i,
				seqNum:    startSeq + i,
			}
		}
		close(tasks)
	}()

	// 結果の収集
	wins := []int{0, 0}
	draws, forfeits := 0, 0
	for i := 0; i < *games; i++ {
		result := <-results
		switch result.result.Winner {
		case -1:
			draws++
		default:
			wins[result.result.Winner]++
		}
		if result.result.Forfeit {
			forfeits++
		}
	}

	// すべてのワーカーの終了を待つ
	wg.Wait()

	fmt.Println("すべての対戦が完了しました")
	fmt.Printf("勝利数: %s: %d, %s: %d, 引き分け: %d, 反則: %d\n",
		*agent0, wins[0], *agent1, wins[1], draws, forfeits)
}
