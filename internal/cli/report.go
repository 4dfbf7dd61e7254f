package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/sift-money/sift/internal/evaluate"
	"github.com/sift-money/sift/internal/model"
)

// RenderReport writes the evaluation report to w: overall accuracy, a
// per-category precision/recall/F1 table, and the confusion matrix.
func RenderReport(w io.Writer, report *evaluate.Report) {
	fmt.Fprintln(w, TitleStyle.Render("Model Evaluation"))
	fmt.Fprintf(w, "%s %s\n\n",
		BoldStyle.Render("Accuracy:"),
		SuccessStyle.Render(fmt.Sprintf("%.2f", report.Accuracy)))

	nameWidth := len("category")
	for _, class := range report.Classes {
		if len(class) > nameWidth {
			nameWidth = len(class)
		}
	}

	fmt.Fprintln(w, BoldStyle.Render("Classification Report"))
	fmt.Fprintf(w, "  %-*s  %9s  %9s  %9s  %8s\n", nameWidth, "category", "precision", "recall", "f1-score", "support")
	for _, class := range report.Classes {
		m := report.PerClass[class]
		fmt.Fprintf(w, "  %-*s  %9.2f  %9.2f  %9.2f  %8d\n",
			nameWidth, class, m.Precision, m.Recall, m.F1, m.Support)
	}
	fmt.Fprintf(w, "  %s\n\n", SubtleStyle.Render(fmt.Sprintf("%d test records", report.Total)))

	fmt.Fprintln(w, BoldStyle.Render("Confusion Matrix"))
	fmt.Fprintf(w, "  %s\n", SubtleStyle.Render("rows = true category, columns = predicted"))
	for i, class := range report.Classes {
		cells := make([]string, len(report.Confusion[i]))
		for j, count := range report.Confusion[i] {
			cells[j] = fmt.Sprintf("%5d", count)
		}
		fmt.Fprintf(w, "  %-*s %s\n", nameWidth, class, strings.Join(cells, " "))
	}
}

// RenderPredictions writes classified descriptions to w.
func RenderPredictions(w io.Writer, predictions []model.Prediction) {
	descWidth := len("description")
	for _, p := range predictions {
		if len(p.Description) > descWidth {
			descWidth = len(p.Description)
		}
	}

	fmt.Fprintf(w, "%-*s  %-20s  %s\n", descWidth, "description", "category", "confidence")
	for _, p := range predictions {
		fmt.Fprintf(w, "%-*s  %-20s  %s\n",
			descWidth, p.Description,
			SuccessStyle.Render(fmt.Sprintf("%-20s", p.Category)),
			SubtleStyle.Render(fmt.Sprintf("%.2f", p.Confidence)))
	}
}

// RenderRuns writes training-run history to w, newest first.
func RenderRuns(w io.Writer, runs []model.TrainingRun) {
	if len(runs) == 0 {
		fmt.Fprintln(w, SubtleStyle.Render("No training runs recorded yet."))
		return
	}

	fmt.Fprintf(w, "%-4s  %-19s  %-9s  %-7s  %-10s  %s\n",
		"id", "when", "accuracy", "records", "categories", "data")
	for _, run := range runs {
		fmt.Fprintf(w, "%-4d  %-19s  %-9.2f  %-7d  %-10d  %s\n",
			run.ID,
			run.CreatedAt.Format("2006-01-02 15:04:05"),
			run.Accuracy,
			run.TrainRecords+run.TestRecords,
			run.Categories,
			run.DataPath)
	}
}
