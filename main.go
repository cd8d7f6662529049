// Command gridrl trains tabular agents on configurable gridworld
// puzzles and renders what they learned.
//
//	gridrl play --agent qlearning --episodes 500 --rows 5 --columns 5 \
//	    --goal 4,4 --walls "1,1;2,1" --coins 0,4 --render
//	gridrl render --rows 5 --columns 5 --goal 4,4 --out grid.png
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"strings"

	"gridrl/agent"
	"gridrl/agent/tabular"
	"gridrl/agent/tabular/doubleq"
	"gridrl/agent/tabular/esarsa"
	"gridrl/agent/tabular/qlearning"
	"gridrl/agent/tabular/sarsa"
	"gridrl/environment"
	"gridrl/environment/envconfig"
	"gridrl/experiment"
	"gridrl/experiment/tracker"
	"gridrl/grid"
	"gridrl/plot"
	"gridrl/render"
	"gridrl/timestep"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("gridrl: ")

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "play":
		runPlay(os.Args[2:])
	case "render":
		runRender(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `usage:
  gridrl play   [flags]   train an agent and report the run
  gridrl render [flags]   draw a configured layout to stdout or PNG

run "gridrl <command> -h" for the command's flags
`)
}

// envFlags holds the layout and dynamics flags shared by the
// subcommands. Values not set on the command line fall back to the
// config file (when given) or the envconfig defaults.
type envFlags struct {
	file    string
	rows    int
	columns int
	start   string
	goal    string
	loss    string
	walls   string
	coins   string
	portals string
	wrap    bool

	stepLimit int
	discount  float64

	stepPenalty      float64
	collisionPenalty float64
	goalReward       float64
	lossPenalty      float64
	coinReward       float64
}

func registerEnvFlags(fs *flag.FlagSet) *envFlags {
	def := envconfig.NewConfig()

	var f envFlags
	fs.StringVar(&f.file, "config", "", "JSON environment config file")
	fs.IntVar(&f.rows, "rows", def.Rows, "grid height")
	fs.IntVar(&f.columns, "columns", def.Cols, "grid width")
	fs.StringVar(&f.start, "start", def.Start.Key(), `start cell "row,col"`)
	fs.StringVar(&f.goal, "goal", def.Goal.Key(), `goal cell "row,col"`)
	fs.StringVar(&f.loss, "loss", "", `loss cells "row,col;row,col"`)
	fs.StringVar(&f.walls, "walls", "", `wall cells "row,col;row,col"`)
	fs.StringVar(&f.coins, "coins", "", `coin cells "row,col;row,col"`)
	fs.StringVar(&f.portals, "portals", "", `portals "entry>exit;entry>exit"`)
	fs.BoolVar(&f.wrap, "wrap", def.Wrap, "wrap movement at the edges instead of colliding")
	fs.IntVar(&f.stepLimit, "step-limit", def.StepLimit, "episode step budget, 0 disables truncation")
	fs.Float64Var(&f.discount, "discount", def.Discount, "environment discount factor")
	fs.Float64Var(&f.stepPenalty, "step-penalty", def.Rewards.Step, "reward per ordinary step")
	fs.Float64Var(&f.collisionPenalty, "collision-penalty", def.Rewards.Collision, "reward for a rejected move")
	fs.Float64Var(&f.goalReward, "goal-reward", def.Rewards.Goal, "reward for reaching the goal")
	fs.Float64Var(&f.lossPenalty, "loss-penalty", def.Rewards.Loss, "reward for entering a loss cell")
	fs.Float64Var(&f.coinReward, "coin-reward", def.Rewards.Coin, "reward for collecting a coin")
	return &f
}

// build assembles the environment config, layering command-line
// overrides over the config file when one was given.
func (f *envFlags) build(fs *flag.FlagSet) (envconfig.Config, error) {
	cfg := envconfig.NewConfig()
	if f.file != "" {
		loaded, err := envconfig.Load(f.file)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	var err error
	set := func(name string, apply func() error) {
		if err != nil {
			return
		}
		if f.file != "" && !flagWasSet(fs, name) {
			return
		}
		err = apply()
	}

	set("rows", func() error { cfg.Rows = f.rows; return nil })
	set("columns", func() error { cfg.Cols = f.columns; return nil })
	set("start", func() error {
		c, perr := grid.ParseCoordinate(f.start)
		cfg.Start = c
		return perr
	})
	set("goal", func() error {
		c, perr := grid.ParseCoordinate(f.goal)
		cfg.Goal = c
		return perr
	})
	set("loss", func() error {
		cs, perr := envconfig.ParseCoordinateList(f.loss)
		cfg.Loss = cs
		return perr
	})
	set("walls", func() error {
		cs, perr := envconfig.ParseCoordinateList(f.walls)
		cfg.Walls = cs
		return perr
	})
	set("coins", func() error {
		cs, perr := envconfig.ParseCoordinateList(f.coins)
		cfg.Coins = cs
		return perr
	})
	set("portals", func() error {
		ps, perr := envconfig.ParsePortalList(f.portals)
		cfg.Portals = ps
		return perr
	})
	set("wrap", func() error { cfg.Wrap = f.wrap; return nil })
	set("step-limit", func() error { cfg.StepLimit = f.stepLimit; return nil })
	set("discount", func() error { cfg.Discount = f.discount; return nil })
	set("step-penalty", func() error { cfg.Rewards.Step = f.stepPenalty; return nil })
	set("collision-penalty", func() error { cfg.Rewards.Collision = f.collisionPenalty; return nil })
	set("goal-reward", func() error { cfg.Rewards.Goal = f.goalReward; return nil })
	set("loss-penalty", func() error { cfg.Rewards.Loss = f.lossPenalty; return nil })
	set("coin-reward", func() error { cfg.Rewards.Coin = f.coinReward; return nil })

	return cfg, err
}

func flagWasSet(fs *flag.FlagSet, name string) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

func runPlay(args []string) {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	ef := registerEnvFlags(fs)

	def := agent.DefaultHyperparameters()
	episodes := fs.Int("episodes", 500, "number of training episodes")
	maxSteps := fs.Int("max-steps", 0, "loop-level step cap per episode, 0 defers to the environment's budget")
	agentName := fs.String("agent", qlearning.Name,
		"algorithm: "+strings.Join(agent.Names(), ", "))
	alpha := fs.Float64("alpha", def.Alpha, "learning rate")
	gamma := fs.Float64("gamma", def.Gamma, "agent discount factor")
	epsilon := fs.Float64("epsilon", def.Epsilon, "initial exploration rate")
	epsilonDecay := fs.Float64("epsilon-decay", def.EpsilonDecay, "multiplicative per-episode epsilon decay")
	epsilonStep := fs.Float64("epsilon-step", def.EpsilonStep, "subtractive per-episode epsilon decay, overrides -epsilon-decay when positive")
	epsilonMin := fs.Float64("epsilon-min", def.EpsilonMin, "exploration rate floor")
	bootstrap := fs.String("bootstrap", def.Bootstrap, "table bootstrap: zeros, optimistic, random, small-random")
	seed := fs.Uint64("seed", 42, "random seed")
	saveTable := fs.String("save-table", "", "write the learned Q-table to this JSON file")
	loadTable := fs.String("load-table", "", "resume from a saved Q-table JSON file")
	plotPath := fs.String("plot", "", "write a learning-curve HTML page to this file")
	saveReturns := fs.String("save-returns", "", "write per-episode returns to this gob file")
	saveLengths := fs.String("save-lengths", "", "write per-episode lengths to this gob file")
	doRender := fs.Bool("render", false, "render one evaluation episode after training")
	noColor := fs.Bool("no-color", false, "disable ANSI colors in rendering")
	progress := fs.Bool("progress", false, "show a progress bar during training")
	fs.Parse(args)

	cfg, err := ef.build(fs)
	if err != nil {
		log.Fatal(err)
	}
	env, err := cfg.Create()
	if err != nil {
		log.Fatal(err)
	}

	h := agent.Hyperparameters{
		Alpha:        *alpha,
		Gamma:        *gamma,
		Epsilon:      *epsilon,
		EpsilonDecay: *epsilonDecay,
		EpsilonStep:  *epsilonStep,
		EpsilonMin:   *epsilonMin,
		Bootstrap:    *bootstrap,
	}
	ag, err := buildAgent(*agentName, h, env, *seed, *loadTable)
	if err != nil {
		log.Fatal(err)
	}

	var trackers []tracker.Tracker
	if *saveReturns != "" {
		trackers = append(trackers, tracker.NewReturn(*saveReturns))
	}
	if *saveLengths != "" {
		trackers = append(trackers, tracker.NewEpisodeLength(*saveLengths))
	}

	loop := experiment.New(env, ag, *episodes, *maxSteps, trackers...)
	if *progress {
		loop.ShowProgress()
	}

	summaries, err := loop.Run()
	if err != nil {
		log.Fatal(err)
	}
	if err := loop.Save(); err != nil {
		log.Fatal(err)
	}

	report(loop, *agentName, summaries)

	if *plotPath != "" {
		title := fmt.Sprintf("%s on %dx%d", *agentName, cfg.Rows, cfg.Cols)
		if err := plot.LearningCurve(title, summaries, *plotPath); err != nil {
			log.Fatal(err)
		}
	}
	if *saveTable != "" {
		if err := saveLearnedTable(ag, *saveTable); err != nil {
			log.Fatal(err)
		}
	}
	if *doRender {
		renderEpisode(env, ag, !*noColor, *maxSteps)
	}
}

// buildAgent constructs the agent through the registry, or directly
// around a loaded table when resuming.
func buildAgent(name string, h agent.Hyperparameters,
	env environment.Environment, seed uint64, loadPath string) (agent.Agent, error) {
	if loadPath == "" {
		cfg, err := agent.NewConfig(name, h)
		if err != nil {
			return nil, err
		}
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return cfg.CreateAgent(env, seed)
	}

	table, err := tabular.LoadQTable(loadPath)
	if err != nil {
		return nil, err
	}
	switch name {
	case qlearning.Name:
		return qlearning.New(table, h, seed)
	case sarsa.Name:
		return sarsa.New(table, h, seed)
	case esarsa.Name:
		return esarsa.New(table, h, seed)
	case doubleq.Name:
		return nil, fmt.Errorf("%s keeps two tables and cannot resume from a single saved table", name)
	}
	return nil, fmt.Errorf("no algorithm registered as %q (have %v)", name, agent.Names())
}

func saveLearnedTable(ag agent.Agent, path string) error {
	holder, ok := ag.(interface{ Table() tabular.Table })
	if !ok {
		return fmt.Errorf("agent does not expose a single Q-table to save")
	}
	return tabular.SaveTable(holder.Table(), path)
}

func report(loop *experiment.Loop, agentName string,
	summaries []experiment.EpisodeSummary) {
	reasons := make(map[timestep.EndReason]int)
	var totalReturn float64
	for _, s := range summaries {
		reasons[s.Reason]++
		totalReturn += s.Return
	}

	fmt.Printf("run %v: %s, %d episodes\n", loop.RunID(), agentName, len(summaries))
	fmt.Printf("  goal %d, loss %d, truncated %d\n",
		reasons[timestep.EndGoal], reasons[timestep.EndLoss],
		reasons[timestep.EndTruncated])
	if len(summaries) > 0 {
		last := summaries[len(summaries)-1]
		fmt.Printf("  mean return %.3f, final return %.3f (%d steps, %v)\n",
			totalReturn/float64(len(summaries)), last.Return, last.Steps,
			last.Reason)
		if !math.IsNaN(last.Epsilon) {
			fmt.Printf("  final epsilon %.3f\n", last.Epsilon)
		}
	}
}

// renderStepCap bounds the render loop when neither the caller nor
// the environment's step budget would, so a stuck policy cannot
// animate forever.
const renderStepCap = 200

// renderEpisode plays one more episode with the trained agent, drawing
// the grid after every step. maxSteps <= 0 selects renderStepCap.
func renderEpisode(env environment.Environment, ag agent.Agent, colors bool,
	maxSteps int) {
	if maxSteps <= 0 {
		maxSteps = renderStepCap
	}
	r := render.NewASCII(colors)

	step := env.Reset()
	fmt.Printf("\n%s\n", r.Render(env))

	for steps := 0; !step.Last() && steps < maxSteps; steps++ {
		action := ag.SelectAction(step)
		next, err := env.Step(action)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("\n%s %s  (reward %+.2f)\n%s\n",
			action.Symbol(), action, next.Reward, r.Render(env))
		step = next
	}

	if step.Last() {
		fmt.Printf("\nepisode ended: %v after %d steps\n", step.End, step.Number)
	} else {
		fmt.Printf("\nstopped after %d steps without reaching a terminal\n",
			step.Number)
	}
}

func runRender(args []string) {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	ef := registerEnvFlags(fs)
	out := fs.String("out", "", "PNG output path; empty prints the grid to stdout")
	cellSize := fs.Int("cell-size", render.DefaultCellSize, "PNG cell edge in pixels")
	noColor := fs.Bool("no-color", false, "disable ANSI colors in stdout rendering")
	fs.Parse(args)

	cfg, err := ef.build(fs)
	if err != nil {
		log.Fatal(err)
	}
	env, err := cfg.Create()
	if err != nil {
		log.Fatal(err)
	}
	env.Reset()

	if *out == "" {
		fmt.Println(render.NewASCII(!*noColor).Render(env))
		return
	}
	if err := render.NewPNG(*cellSize).Render(env, *out); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("wrote %s\n", *out)
}
