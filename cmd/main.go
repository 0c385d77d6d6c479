package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iSelfToken/api-plataforma/internal/auth"
	"github.com/iSelfToken/api-plataforma/internal/campanha"
	"github.com/iSelfToken/api-plataforma/internal/cep"
	"github.com/iSelfToken/api-plataforma/internal/checkout"
	"github.com/iSelfToken/api-plataforma/internal/cnpj"
	"github.com/iSelfToken/api-plataforma/internal/dashboard"
	"github.com/iSelfToken/api-plataforma/internal/investimento"
	"github.com/iSelfToken/api-plataforma/internal/localidade"
	"github.com/iSelfToken/api-plataforma/internal/perfil"
	"github.com/iSelfToken/api-plataforma/internal/ratelimit"
	"github.com/iSelfToken/api-plataforma/internal/startup"
	"github.com/iSelfToken/api-plataforma/internal/usuario"
	"github.com/iSelfToken/api-plataforma/internal/utils/db"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Arquivo .env não encontrado, usando variáveis de ambiente")
	}

	conn, err := db.Conectar()
	if err != nil {
		log.Fatal("Erro ao conectar no banco:", err)
	}

	// AutoMigrate para todos os modelos
	for _, migrar := range []func(*gorm.DB) error{
		usuario.Migrate,
		perfil.Migrate,
		startup.Migrate,
		campanha.Migrate,
		investimento.Migrate,
		localidade.Migrate,
	} {
		if err := migrar(conn); err != nil {
			log.Fatal("Erro no AutoMigrate:", err)
		}
	}
	if err := localidade.Seed(conn); err != nil {
		log.Fatal("Erro ao semear localidades:", err)
	}

	// Redis guarda códigos A2F, sessões de checkout e cobranças Pix
	redisClient := redis.NewClient(&redis.Options{
		Addr: getenv("REDIS_ADDR", "localhost:6379"),
	})

	codigos := auth.NewRedisCodigoStore(redisClient)
	sessoes := checkout.NewRedisBroker(redisClient)
	cobrancas := checkout.NewRedisCobrancaStore(redisClient)

	investimentoRepo := investimento.NewRepository(conn)
	campanhaRepo := campanha.NewRepository(conn)
	servicoPix := checkout.NewServicoPix(sessoes, cobrancas)

	// Handlers
	usuarioHandler := usuario.NewHandler(conn, codigos)
	perfilHandler := perfil.NewHandler(perfil.NewRepository(conn))
	startupHandler := startup.NewHandler(conn)
	campanhaHandler := campanha.NewHandler(campanhaRepo)
	checkoutHandler := checkout.NewHandler(sessoes, servicoPix, investimentoRepo, campanhaRepo)
	investimentoHandler := investimento.NewHandler(investimentoRepo, campanhaRepo)
	dashboardHandler := dashboard.NewHandler(conn, startup.NewRepository(), usuario.NewRepository(), campanhaRepo, investimentoRepo)
	cepHandler := cep.NewHandler(cep.NewClient())
	cnpjHandler := cnpj.NewHandler(cnpj.NewClient())
	localidadeHandler := localidade.NewHandler(localidade.NewRepository(conn))

	limitador := ratelimit.NovoLimitador(10, time.Minute)
	defer limitador.Parar()

	// Router
	r := mux.NewRouter()

	// Rotas públicas de autenticação, protegidas contra força bruta.
	// POST /api/auth, PUT /api/auth/a2f, POST /api/newcode e POST
	// /api/usuarios são as rotas consumidas pelo frontend; as variantes
	// /login, /cadastro e /a2f/reenviar são apelidos equivalentes.
	autenticacao := r.PathPrefix("/api/auth").Subrouter()
	autenticacao.Use(limitador.Middleware)
	autenticacao.HandleFunc("", usuarioHandler.Login).Methods("POST")
	autenticacao.HandleFunc("/cadastro", usuarioHandler.Cadastrar).Methods("POST")
	autenticacao.HandleFunc("/login", usuarioHandler.Login).Methods("POST")
	autenticacao.HandleFunc("/a2f", usuarioHandler.VerificarA2F).Methods("POST", "PUT")
	autenticacao.HandleFunc("/a2f/reenviar", usuarioHandler.NovoCodigo).Methods("POST")
	autenticacao.HandleFunc("/senha/forca", usuarioHandler.ForcaSenha).Methods("POST")
	r.Handle("/api/usuarios", limitador.Middleware(http.HandlerFunc(usuarioHandler.Cadastrar))).Methods("POST")
	r.Handle("/api/newcode", limitador.Middleware(http.HandlerFunc(usuarioHandler.NovoCodigo))).Methods("POST")

	// Rotas públicas de consulta
	r.HandleFunc("/api/cep/{cep}", cepHandler.Buscar).Methods("GET")
	r.HandleFunc("/api/cnpj/{cnpj}", cnpjHandler.Buscar).Methods("GET")
	r.HandleFunc("/api/location/countries", localidadeHandler.ListarPaises).Methods("GET")
	r.HandleFunc("/api/location/countries/{paisId}/states", localidadeHandler.ListarEstados).Methods("GET")
	r.HandleFunc("/api/location/states/{estadoId}/cities", localidadeHandler.ListarCidades).Methods("GET")
	r.HandleFunc("/api/location/states", localidadeHandler.ListarEstados).Methods("GET")
	r.HandleFunc("/api/location/cities", localidadeHandler.ListarCidades).Methods("GET")
	r.HandleFunc("/api/checkout/parcelas", checkoutHandler.Parcelas).Methods("GET")
	r.HandleFunc("/api/startup/{id}/campanha", campanhaHandler.Listar).Methods("GET")
	r.HandleFunc("/api/campanha/{cid}", campanhaHandler.Buscar).Methods("GET")

	// Rotas autenticadas
	api := r.PathPrefix("/api").Subrouter()
	api.Use(auth.MiddlewareAutenticacao)

	api.HandleFunc("/usuario/me", usuarioHandler.Me).Methods("GET")
	api.HandleFunc("/usuario/{id}", usuarioHandler.AtualizarUsuario).Methods("PUT")
	api.HandleFunc("/usuario/{id}", usuarioHandler.DeletarUsuario).Methods("DELETE")

	api.HandleFunc("/perfil", perfilHandler.MeuPerfil).Methods("GET")
	api.HandleFunc("/perfil/{id}", perfilHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/perfil/{id}", perfilHandler.Atualizar).Methods("PUT")
	api.HandleFunc("/perfil/{id}/documentos", perfilHandler.AdicionarDocumento).Methods("POST")
	api.HandleFunc("/perfil/{id}/documentos/{did}", perfilHandler.RemoverDocumento).Methods("DELETE")

	api.HandleFunc("/startup", startupHandler.Criar).Methods("POST")
	api.HandleFunc("/startup", startupHandler.Listar).Methods("GET")
	api.HandleFunc("/startup/{id}", startupHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/startup/{id}", startupHandler.Atualizar).Methods("PUT")
	api.HandleFunc("/startup/{id}", startupHandler.Deletar).Methods("DELETE")

	api.HandleFunc("/startup/{id}/campanha", campanhaHandler.Criar).Methods("POST")
	api.HandleFunc("/campanha/{cid}", campanhaHandler.Atualizar).Methods("PUT")
	api.HandleFunc("/campanha/{cid}/status", campanhaHandler.AtualizarStatus).Methods("PUT")
	api.HandleFunc("/campanha/{cid}", campanhaHandler.Deletar).Methods("DELETE")

	api.HandleFunc("/checkout/sessao", checkoutHandler.CriarSessao).Methods("POST")
	api.HandleFunc("/checkout/sessao/{sid}", checkoutHandler.BuscarSessao).Methods("GET")
	api.HandleFunc("/checkout/sessao/{sid}", checkoutHandler.CancelarSessao).Methods("DELETE")
	api.HandleFunc("/checkout/cartao", checkoutHandler.PagarCartao).Methods("POST")
	api.HandleFunc("/checkout/pix", checkoutHandler.GerarPix).Methods("POST")
	api.HandleFunc("/checkout/pix/{pid}", checkoutHandler.StatusPix).Methods("GET")
	api.HandleFunc("/checkout/pix/{pid}/confirmar", checkoutHandler.ConfirmarPix).Methods("POST")
	api.HandleFunc("/checkout/pix/{pid}", checkoutHandler.CancelarPix).Methods("DELETE")

	api.HandleFunc("/investimento", investimentoHandler.ListarMeus).Methods("GET")
	api.HandleFunc("/startup/{id}/investimentos", investimentoHandler.ListarPorStartup).Methods("GET")
	api.HandleFunc("/campanha/{cid}/posicao", investimentoHandler.Posicao).Methods("GET")

	api.HandleFunc("/startup/dashboard/{id}/historico", dashboardHandler.HistoricoStartup).Methods("GET")
	api.HandleFunc("/startup/dashboard/investidor/{id}", dashboardHandler.CarteiraInvestidor).Methods("GET")

	// Rotas administrativas
	admin := r.PathPrefix("/api/admin").Subrouter()
	admin.Use(auth.MiddlewareAutenticacao, auth.RequireAdmin)
	admin.HandleFunc("/usuarios", usuarioHandler.ListarUsuarios).Methods("GET")
	admin.HandleFunc("/usuario/{id}/resetar-senha", usuarioHandler.ResetarSenha).Methods("POST")
	admin.HandleFunc("/perfil/documentos/{did}/status", perfilHandler.AtualizarStatusDocumento).Methods("PUT")
	admin.HandleFunc("/startup/{id}/status", startupHandler.AtualizarStatus).Methods("PUT")
	admin.HandleFunc("/investimento/{id}/confirmar", investimentoHandler.Confirmar).Methods("PUT")
	admin.HandleFunc("/investimento/{id}/cancelar", investimentoHandler.Cancelar).Methods("PUT")
	admin.HandleFunc("/dashboard/startups/exportar", dashboardHandler.ExportarStartups).Methods("GET")
	admin.HandleFunc("/dashboard/investidores/exportar", dashboardHandler.ExportarInvestidores).Methods("GET")

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{getenv("CORS_ORIGIN", "http://localhost:3000")},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}).Handler(r)

	server := &http.Server{
		Addr:         ":" + getenv("PORT", "8080"),
		Handler:      corsHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("Servidor rodando em http://localhost%s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		log.Fatal("Erro ao iniciar servidor:", err)
	case <-quit:
		log.Println("Encerrando servidor...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Erro no encerramento: %v", err)
	}
	log.Println("Servidor encerrado")
}

func getenv(chave, padrao string) string {
	if v := os.Getenv(chave); v != "" {
		return v
	}
	return padrao
}
