package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/tacslabs/tacs-console/internal/model"
	"github.com/tacslabs/tacs-console/internal/service"
)

func newAnnounceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "announce",
		Aliases: []string{"announcements"},
		Short:   "Manage announcements",
	}

	cmd.AddCommand(newAnnounceListCmd())
	cmd.AddCommand(newAnnounceCreateCmd())
	cmd.AddCommand(newAnnounceDeleteCmd())
	cmd.AddCommand(newAnnounceToggleCmd())
	cmd.AddCommand(newAnnounceSearchCmd())
	cmd.AddCommand(newAnnounceStatsCmd())
	cmd.AddCommand(newAnnounceViewCmd())

	return cmd
}

func newAnnounceListCmd() *cobra.Command {
	var (
		all      bool
		byType   string
		priority string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List announcements (active ones by default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := context.Background()
			var anns []model.Announcement
			switch {
			case byType != "":
				anns, err = a.announcements.GetByType(ctx, model.AnnouncementType(byType))
			case priority != "":
				anns, err = a.announcements.GetByPriority(ctx, model.Priority(priority))
			case all:
				anns, err = a.announcements.GetAll(ctx)
			default:
				anns = a.announcements.GetActive(ctx)
			}
			if err != nil {
				return err
			}

			printAnnouncements(anns)
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include inactive and expired announcements")
	cmd.Flags().StringVar(&byType, "type", "", "Filter by type (news|maintenance|feature|alert)")
	cmd.Flags().StringVar(&priority, "priority", "", "Filter by priority (low|medium|high|critical)")

	return cmd
}

func newAnnounceCreateCmd() *cobra.Command {
	var (
		title     string
		content   string
		annType   string
		priority  string
		createdBy string
		tags      []string
		expiresIn time.Duration
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Publish a new announcement",
		Example: `  tacsctl announce create --title "Maintenance window" --content "..." \
    --type maintenance --priority high --by alice --tag maintenance --expires-in 48h`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			req := service.CreateRequest{
				Title:     title,
				Content:   content,
				Type:      model.AnnouncementType(annType),
				Priority:  model.Priority(priority),
				CreatedBy: createdBy,
				Tags:      tags,
			}
			if expiresIn > 0 {
				expiry := time.Now().Add(expiresIn)
				req.ExpiresAt = &expiry
			}

			id, err := a.announcements.Create(context.Background(), req)
			if err != nil {
				return err
			}
			fmt.Printf("Created announcement %s\n", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Announcement title (required)")
	cmd.Flags().StringVar(&content, "content", "", "Announcement body (required)")
	cmd.Flags().StringVar(&annType, "type", "news", "Type (news|maintenance|feature|alert)")
	cmd.Flags().StringVar(&priority, "priority", "medium", "Priority (low|medium|high|critical)")
	cmd.Flags().StringVar(&createdBy, "by", "system", "Creator identifier")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "Tag (repeatable)")
	cmd.Flags().DurationVar(&expiresIn, "expires-in", 0, "Expiry relative to now (0 means never)")
	cmd.MarkFlagRequired("title")
	cmd.MarkFlagRequired("content")

	return cmd
}

func newAnnounceDeleteCmd() *cobra.Command {
	var deletedBy string

	cmd := &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete an announcement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			ok, err := a.announcements.Delete(context.Background(), args[0], deletedBy)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("no announcement with id %q", args[0])
			}
			fmt.Println("Deleted", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&deletedBy, "by", "system", "Actor identifier for the audit trail")
	return cmd
}

func newAnnounceToggleCmd() *cobra.Command {
	var (
		active    bool
		updatedBy string
	)

	cmd := &cobra.Command{
		Use:   "toggle [id]",
		Short: "Set an announcement's active flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			ok, err := a.announcements.ToggleStatus(context.Background(), args[0], active, updatedBy)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("no announcement with id %q", args[0])
			}
			fmt.Printf("Set %s active=%v\n", args[0], active)
			return nil
		},
	}

	cmd.Flags().BoolVar(&active, "active", true, "Whether the announcement is active")
	cmd.Flags().StringVar(&updatedBy, "by", "system", "Actor identifier for the audit trail")
	return cmd
}

func newAnnounceSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search [query]",
		Short: "Search announcements by title, content or tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			anns, err := a.announcements.Search(context.Background(), args[0])
			if err != nil {
				return err
			}
			printAnnouncements(anns)
			return nil
		},
	}
}

func newAnnounceStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show announcement statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			stats, err := a.announcements.GetStats(context.Background())
			if err != nil {
				return err
			}

			fmt.Printf("Total: %d (active %d, inactive %d), views: %d\n",
				stats.Total, stats.Active, stats.Inactive, stats.TotalViews)
			for t, n := range stats.ByType {
				fmt.Printf("  type %-12s %d\n", t, n)
			}
			for p, n := range stats.ByPriority {
				fmt.Printf("  priority %-8s %d\n", p, n)
			}
			return nil
		},
	}
}

func newAnnounceViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view [id]",
		Short: "Show one announcement and count the view",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := context.Background()
			ann, err := a.announcements.GetByID(ctx, args[0])
			if err != nil {
				return err
			}
			if ann == nil {
				return fmt.Errorf("no announcement with id %q", args[0])
			}

			a.announcements.IncrementViewCount(ctx, ann.ID)

			fmt.Printf("%s [%s/%s] %s\n", ann.ID, ann.Type, ann.Priority, ann.Title)
			fmt.Println(ann.Content)
			return nil
		},
	}
}

func printAnnouncements(anns []model.Announcement) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTYPE\tPRIORITY\tACTIVE\tPUBLISHED\tVIEWS\tTITLE")
	for _, ann := range anns {
		fmt.Fprintf(w, "%s\t%s\t%s\t%v\t%s\t%d\t%s\n",
			ann.ID, ann.Type, ann.Priority, ann.IsActive,
			ann.PublishedAt.Format("2006-01-02"), ann.ViewCount, ann.Title)
	}
	w.Flush()
}
