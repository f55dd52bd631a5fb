// relatorio_contas exporta el "Relatório de Contas" completo a CSV (ISO-8859-1, separado por ';').
//
// Uso: go run ./cmd/relatorio_contas [-o contas.csv] [-razao ACME] [-cnpj ...] [-codigo ...] [-filial ...]
// Credenciales del backend en BACKEND_EMAIL y BACKEND_PASSWORD.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/Onboarding-api/internal/application/clients"
	"github.com/jhoicas/Onboarding-api/internal/domain/entity"
	"github.com/jhoicas/Onboarding-api/internal/infrastructure/backend"
	"github.com/jhoicas/Onboarding-api/pkg/config"
	"github.com/jhoicas/Onboarding-api/pkg/logger"
)

func main() {
	out := flag.String("o", "relatorio_contas.csv", "archivo de salida")
	var filter entity.ClientFilter
	flag.StringVar(&filter.RazaoSocial, "razao", "", "filtro por razão social")
	flag.StringVar(&filter.CNPJ, "cnpj", "", "filtro por CNPJ")
	flag.StringVar(&filter.CodigoCliente, "codigo", "", "filtro por código do cliente")
	flag.StringVar(&filter.Filial, "filial", "", "filtro por filial")
	flag.Parse()

	email, password := os.Getenv("BACKEND_EMAIL"), os.Getenv("BACKEND_PASSWORD")
	if email == "" || password == "" {
		fmt.Fprintln(os.Stderr, "BACKEND_EMAIL y BACKEND_PASSWORD son obligatorios")
		os.Exit(1)
	}

	cfg := config.LoadBackend()
	log := logger.New(logger.Config{Env: "development", Level: "warn", Output: os.Stderr})
	client := backend.NewClient(cfg.BaseURL, cfg.Timeout, log)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	token, err := client.Login(ctx, email, password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Login en el backend: %v\n", err)
		os.Exit(1)
	}
	ctx = entity.ContextWithSession(ctx, &entity.Session{Email: email, BackendToken: token})

	rows, err := fetchAll(ctx, clients.NewUseCase(client, log), filter)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Buscar clientes: %v\n", err)
		os.Exit(1)
	}

	f, err := os.Create(*out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear %s: %v\n", *out, err)
		os.Exit(1)
	}
	defer f.Close()
	if err := writeReport(f, rows); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir CSV: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Escrito %s (%d clientes)\n", *out, len(rows))
}
