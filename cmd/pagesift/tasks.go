package main

import (
	"fmt"

	"github.com/pagesift/pagesift"
)

// Run executes the tasks command.
func (c *TasksCmd) Run(deps *Dependencies) error {
	if c.ID != "" {
		return c.show(deps)
	}

	tasks, err := deps.Tasks.FindTasks(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagesift.ErrorMessage(err))
		return err
	}

	if len(tasks) == 0 {
		fmt.Fprintln(deps.Stdout, "No tasks found. Use 'pagesift batch' to create some.")
		return nil
	}

	for _, task := range tasks {
		fmt.Fprintf(deps.Stdout, "%s  %-9s  %3d%%  %s\n",
			task.ID, task.Status, task.Progress, task.StartURL)
	}

	return nil
}

// show prints one task in detail.
func (c *TasksCmd) show(deps *Dependencies) error {
	task, err := deps.Tasks.FindTaskByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagesift.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "ID:        %s\n", task.ID)
	fmt.Fprintf(deps.Stdout, "URL:       %s\n", task.StartURL)
	fmt.Fprintf(deps.Stdout, "Budget:    %d pages\n", task.MaxPages)
	fmt.Fprintf(deps.Stdout, "Status:    %s\n", task.Status)
	fmt.Fprintf(deps.Stdout, "Progress:  %d%%\n", task.Progress)
	if task.Strategy != "" {
		fmt.Fprintf(deps.Stdout, "Strategy:  %s\n", task.Strategy)
	}
	fmt.Fprintf(deps.Stdout, "Records:   %d\n", task.Count)
	if task.ResultSum != "" {
		fmt.Fprintf(deps.Stdout, "Checksum:  %s\n", task.ResultSum)
	}
	if task.Error != "" {
		fmt.Fprintf(deps.Stdout, "Error:     %s\n", task.Error)
	}
	fmt.Fprintf(deps.Stdout, "Created:   %s\n", task.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(deps.Stdout, "Updated:   %s\n", task.UpdatedAt.Format("2006-01-02 15:04:05"))

	return nil
}
