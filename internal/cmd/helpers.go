package cmd

import (
	"fmt"

	"github.com/Sea-Snell/tpu-pod-launcher/internal/config"
	"github.com/Sea-Snell/tpu-pod-launcher/internal/project"
	"github.com/Sea-Snell/tpu-pod-launcher/internal/shell"
	"github.com/Sea-Snell/tpu-pod-launcher/internal/state"
	"github.com/Sea-Snell/tpu-pod-launcher/internal/tpu"
)

func runOpts() shell.Options {
	return shell.Options{Verbose: verbose}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func stateStore(cfg *config.Config) (state.Store, error) {
	return state.NewFileStore(cfg.StateFile)
}

// currentProject resolves the project to operate on: the --project flag
// when given, otherwise the persisted selection.
func currentProject(cfg *config.Config) (*project.Project, *config.Project, string, error) {
	name := projectFlag
	if name == "" {
		store, err := stateStore(cfg)
		if err != nil {
			return nil, nil, "", err
		}
		name, err = store.Project()
		if err != nil {
			return nil, nil, "", err
		}
	}
	if name == "" {
		return nil, nil, "", fmt.Errorf("no project selected; run 'tpupod set-project <name>' or pass --project")
	}

	pc, ok := cfg.Projects[name]
	if !ok {
		return nil, nil, "", fmt.Errorf("unknown project: %s", name)
	}
	return buildProject(&pc), &pc, name, nil
}

func buildProject(pc *config.Project) *project.Project {
	creds := tpu.Credentials{
		User:                  pc.User,
		KeyPath:               pc.KeyPath,
		StrictHostKeyChecking: pc.StrictHostKeyChecking,
		KnownHostsFile:        pc.EffectiveKnownHosts(),
	}
	client := tpu.NewClient(tpu.Identity{Project: pc.TPUProject, Zone: pc.TPUZone}, creds, nil)

	copyDirs := make([]project.CopyDir, len(pc.CopyDirs))
	for i, d := range pc.CopyDirs {
		copyDirs[i] = project.CopyDir{Local: d.Local, Remote: d.Remote}
	}
	return &project.Project{
		Client:       client,
		TPUName:      pc.TPUName,
		WorkingDir:   pc.WorkingDir,
		CopyDirs:     copyDirs,
		CopyExcludes: pc.CopyExcludes,
		KillCommands: pc.KillCommands,
	}
}
