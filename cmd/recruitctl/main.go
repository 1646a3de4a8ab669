package main

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"hr-pipeline-backend/config"
	"hr-pipeline-backend/db"
	usersstore "hr-pipeline-backend/lib/users/store"
	authutils "hr-pipeline-backend/lib/utils/auth-utils"
	"hr-pipeline-backend/models"
)

var rootCmd = &cobra.Command{
	Use:   "recruitctl",
	Short: "Administration du service de recrutement",
	Long: `Outils d'administration du service de recrutement.
La connexion à la base utilise la même configuration que le serveur (config.yml et variables DB_*).`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return connect(cmd.Name() == "migrate")
	},
}

func main() {
	registerCommands()
	if err := rootCmd.Execute(); err != nil {
		fmt.Println("erreur:", err)
		os.Exit(1)
	}
}

func registerCommands() {
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(seedCmd())
	rootCmd.AddCommand(usersCmd())
	rootCmd.AddCommand(tokenCmd())
}

func connect(migrate bool) error {
	log.SetLevel(log.WarnLevel)
	config.InitConfig()
	params := db.ConnectParams{
		Driver:     config.Conf.Database.Driver,
		Host:       config.Conf.Database.Host,
		Port:       config.Conf.Database.Port,
		Database:   config.Conf.Database.Name,
		User:       config.Conf.Database.User,
		Password:   config.Conf.Database.Password,
		SqlitePath: config.Conf.Database.SqlitePath,
		DebugMode:  *config.Conf.Database.DebugMode,
		Migrate:    migrate || *config.Conf.Database.MigrateOnStart,
	}
	return db.Connect(params)
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Créer ou mettre à jour les tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("migration terminée")
			return nil
		},
	}
}

func seedCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Charger utilisateurs et demandes de recrutement depuis un fichier yaml",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(file)
			if err != nil {
				return errors.Wrapf(err, "lecture du fichier %s", file)
			}
			seed, err := ParseSeed(data)
			if err != nil {
				return err
			}
			result, err := ApplySeed(cmd.Context(), db.DB, *seed)
			if err != nil {
				return err
			}
			fmt.Printf("utilisateurs créés: %d, ignorés: %d, demandes créées: %d\n",
				result.UsersCreated, result.UsersSkipped, result.HiringRequestsCreated)
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "seed.yml", "fichier yaml")
	return cmd
}

func usersCmd() *cobra.Command {
	users := &cobra.Command{Use: "users", Short: "Utilisateurs"}
	users.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Lister les utilisateurs",
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := usersstore.NewInstance(db.DB).ListByRoles([]models.UserRole{models.RHRole, models.ManagerRole, models.CORole})
			if err != nil {
				return err
			}
			tw := table.NewWriter()
			tw.SetOutputMirror(os.Stdout)
			tw.AppendHeader(table.Row{"ID", "Identifiant", "Nom", "Rôle", "Email", "Actif"})
			for _, u := range list {
				tw.AppendRow(table.Row{u.ID, u.Username, u.GetFullName(), u.Role.ToHuman(), u.Email, u.IsActive})
			}
			tw.Render()
			return nil
		},
	})
	return users
}

func tokenCmd() *cobra.Command {
	var username string
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Émettre un jeton d'accès pour les tests locaux",
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := usersstore.NewInstance(db.DB).FindByUsername(username)
			if err != nil {
				return err
			}
			if rec == nil {
				return errors.Errorf("utilisateur %q introuvable", username)
			}
			token, err := authutils.GetToken(rec.ID, rec.GetFullName(), rec.Role)
			if err != nil {
				return err
			}
			fmt.Println(token)
			return nil
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "identifiant")
	_ = cmd.MarkFlagRequired("username")
	return cmd
}
