package i18n

var dict = map[string]map[string]string{
	"pt": {
		"required":      "Obrigatório",
		"too_short":     "Muito curto",
		"too_long":      "Muito longo",
		"invalid_email": "E-mail inválido",

		"nav.services": "Serviços",
		"nav.products": "Produtos",
		"nav.contact":  "Contato",
		"nav.admin":    "Admin",
		"nav.signout":  "Sair",

		"hero.title":         "Assistência Técnica",
		"hero.highlight":     "Especializada",
		"hero.subtitle":      "Reparo rápido, qualidade garantida e preços justos. Sua confiança é nossa prioridade.",
		"hero.cta_whatsapp":  "Fale Conosco no WhatsApp",
		"hero.cta_products":  "Ver Produtos",
		"section.loading":    "Carregando...",
		"services.title":     "Nossos Serviços",
		"services.subtitle":  "Soluções completas para o seu smartphone",
		"services.from":      "A partir de",
		"services.quote":     "Solicitar Orçamento",
		"products.title":     "Produtos em Destaque",
		"products.subtitle":  "Acessórios e peças com qualidade garantida",
		"products.buy":       "Comprar via WhatsApp",
		"products.sold_out":  "Indisponível",
		"products.off":       "%d%% OFF",
		"location.title":     "Nossa Localização",
		"location.subtitle":  "Visite nossa loja física ou entre em contato conosco",
		"location.address":   "Endereço",
		"location.postcode":  "CEP",
		"location.open_maps": "Abrir no Google Maps",
		"location.contact":   "Contato",
		"location.phone":     "Telefone/WhatsApp",
		"location.call":      "Ligar Agora",
		"location.hours":     "Horário de Funcionamento",
		"hours.weekdays":     "Segunda à Sexta",
		"hours.saturday":     "Sábado",
		"hours.sunday":       "Domingo",
		"hours.closed":       "Fechado",
		"footer.tagline":     "Assistência técnica especializada em smartphones.",
		"footer.rights":      "Todos os direitos reservados.",
		"whatsapp.float":     "Fale conosco pelo WhatsApp",

		"field.name":             "Nome",
		"field.email":            "E-mail",
		"field.password":         "Senha",
		"field.description":      "Descrição",
		"field.price":            "Preço",
		"field.image_url":        "URL da imagem",
		"field.category":         "Categoria",
		"field.discount_percent": "Desconto (%)",
		"field.stock_status":     "Em estoque",
		"field.icon":             "Ícone",
		"field.created_at":       "Criado em",

		"auth.signin_title":         "Entrar",
		"auth.signup_title":         "Criar conta",
		"auth.signin_subtitle":      "Acesse o painel administrativo",
		"auth.signup_subtitle":      "Cadastre-se como administrador",
		"auth.submit_signin":        "Entrar",
		"auth.submit_signup":        "Cadastrar",
		"auth.to_signup":            "Não tem conta? Cadastre-se",
		"auth.to_signin":            "Já tem conta? Entrar",
		"auth.forgot":               "Esqueci minha senha",
		"auth.back_home":            "Voltar ao site",
		"auth.welcome_title":        "Bem-vindo!",
		"auth.welcome":              "Login realizado com sucesso.",
		"auth.invalid_credentials":  "E-mail ou senha inválidos.",
		"auth.not_confirmed":        "Confirme seu e-mail antes de entrar.",
		"auth.email_taken":          "Este e-mail já está cadastrado.",
		"auth.signup_title_ok":      "Cadastro realizado!",
		"auth.check_email":          "Verifique seu e-mail para confirmar a conta.",
		"auth.signup_failed":        "Não foi possível concluir o cadastro.",
		"auth.reset_email_required": "Informe seu e-mail para redefinir a senha.",
		"auth.reset_sent":           "Se o e-mail estiver cadastrado, enviaremos um link de redefinição.",
		"auth.reset_failed":         "Não foi possível enviar o e-mail de redefinição.",
		"auth.confirmed":            "E-mail confirmado. Você já pode entrar.",
		"auth.token_invalid":        "Link inválido ou expirado.",
		"auth.recover_title":        "Nova senha",
		"auth.recover_submit":       "Salvar nova senha",
		"auth.recover_done":         "Senha alterada. Você já pode entrar.",
		"auth.signed_out":           "Você saiu da sua conta.",

		"toast.success": "Sucesso",
		"toast.error":   "Erro",
		"toast.info":    "Aviso",

		"guard.forbidden_title": "Acesso negado",
		"guard.forbidden":       "Você não tem permissão de administrador.",
		"guard.lookup_failed":   "Não foi possível verificar suas permissões.",

		"admin.title":         "Painel Administrativo",
		"admin.products":      "Produtos",
		"admin.services":      "Serviços",
		"admin.new":           "Adicionar",
		"admin.new_product":   "Novo produto",
		"admin.new_service":   "Novo serviço",
		"admin.edit_product":  "Editar produto",
		"admin.edit_service":  "Editar serviço",
		"admin.edit":          "Editar",
		"admin.delete":        "Excluir",
		"admin.save":          "Salvar",
		"admin.cancel":        "Cancelar",
		"admin.export":        "Exportar CSV",
		"admin.empty":         "Nenhum registro.",
		"admin.actions":       "Ações",
		"admin.in_stock":      "Em estoque",
		"admin.out_of_stock":  "Sem estoque",
		"admin.signed_in_as":  "Conectado como",
		"admin.created":       "Registro criado.",
		"admin.updated":       "Registro atualizado.",
		"admin.deleted":       "Registro excluído.",
		"admin.save_failed":   "Erro ao salvar",
		"admin.delete_failed": "Erro ao excluir",
		"admin.list_failed":   "Não foi possível carregar a lista.",
		"admin.not_found":     "Registro não encontrado.",

		"error.internal": "Erro interno. Tente novamente.",
		"error.csrf":     "Formulário expirado. Recarregue a página e tente novamente.",
	},
	"en": {
		"required":      "Required",
		"too_short":     "Too short",
		"too_long":      "Too long",
		"invalid_email": "Invalid email",

		"nav.services": "Services",
		"nav.products": "Products",
		"nav.contact":  "Contact",
		"nav.admin":    "Admin",
		"nav.signout":  "Sign out",

		"hero.title":         "Specialized",
		"hero.highlight":     "Phone Repair",
		"hero.subtitle":      "Fast repair, guaranteed quality and fair prices. Your trust is our priority.",
		"hero.cta_whatsapp":  "Talk to us on WhatsApp",
		"hero.cta_products":  "See Products",
		"section.loading":    "Loading...",
		"services.title":     "Our Services",
		"services.subtitle":  "Complete solutions for your smartphone",
		"services.from":      "From",
		"services.quote":     "Request a Quote",
		"products.title":     "Featured Products",
		"products.subtitle":  "Accessories and parts with guaranteed quality",
		"products.buy":       "Buy via WhatsApp",
		"products.sold_out":  "Unavailable",
		"products.off":       "%d%% OFF",
		"location.title":     "Our Location",
		"location.subtitle":  "Visit our store or get in touch",
		"location.address":   "Address",
		"location.postcode":  "Postcode",
		"location.open_maps": "Open in Google Maps",
		"location.contact":   "Contact",
		"location.phone":     "Phone/WhatsApp",
		"location.call":      "Call Now",
		"location.hours":     "Opening Hours",
		"hours.weekdays":     "Monday to Friday",
		"hours.saturday":     "Saturday",
		"hours.sunday":       "Sunday",
		"hours.closed":       "Closed",
		"footer.tagline":     "Specialized smartphone repair.",
		"footer.rights":      "All rights reserved.",
		"whatsapp.float":     "Chat with us on WhatsApp",

		"field.name":             "Name",
		"field.email":            "Email",
		"field.password":         "Password",
		"field.description":      "Description",
		"field.price":            "Price",
		"field.image_url":        "Image URL",
		"field.category":         "Category",
		"field.discount_percent": "Discount (%)",
		"field.stock_status":     "In stock",
		"field.icon":             "Icon",
		"field.created_at":       "Created",

		"auth.signin_title":         "Sign in",
		"auth.signup_title":         "Create account",
		"auth.signin_subtitle":      "Access the admin console",
		"auth.signup_subtitle":      "Register as an administrator",
		"auth.submit_signin":        "Sign in",
		"auth.submit_signup":        "Sign up",
		"auth.to_signup":            "No account? Sign up",
		"auth.to_signin":            "Already registered? Sign in",
		"auth.forgot":               "Forgot my password",
		"auth.back_home":            "Back to the site",
		"auth.welcome_title":        "Welcome!",
		"auth.welcome":              "Signed in successfully.",
		"auth.invalid_credentials":  "Invalid email or password.",
		"auth.not_confirmed":        "Confirm your email before signing in.",
		"auth.email_taken":          "This email is already registered.",
		"auth.signup_title_ok":      "Account created!",
		"auth.check_email":          "Check your email to confirm the account.",
		"auth.signup_failed":        "Could not complete the sign-up.",
		"auth.reset_email_required": "Enter your email to reset the password.",
		"auth.reset_sent":           "If the email is registered, a reset link is on its way.",
		"auth.reset_failed":         "Could not send the reset email.",
		"auth.confirmed":            "Email confirmed. You can sign in now.",
		"auth.token_invalid":        "Invalid or expired link.",
		"auth.recover_title":        "New password",
		"auth.recover_submit":       "Save new password",
		"auth.recover_done":         "Password changed. You can sign in now.",
		"auth.signed_out":           "You have signed out.",

		"toast.success": "Success",
		"toast.error":   "Error",
		"toast.info":    "Notice",

		"guard.forbidden_title": "Access denied",
		"guard.forbidden":       "You do not have administrator access.",
		"guard.lookup_failed":   "Could not check your permissions.",

		"admin.title":         "Admin Console",
		"admin.products":      "Products",
		"admin.services":      "Services",
		"admin.new":           "Add",
		"admin.new_product":   "New product",
		"admin.new_service":   "New service",
		"admin.edit_product":  "Edit product",
		"admin.edit_service":  "Edit service",
		"admin.edit":          "Edit",
		"admin.delete":        "Delete",
		"admin.save":          "Save",
		"admin.cancel":        "Cancel",
		"admin.export":        "Export CSV",
		"admin.empty":         "No records.",
		"admin.actions":       "Actions",
		"admin.in_stock":      "In stock",
		"admin.out_of_stock":  "Out of stock",
		"admin.signed_in_as":  "Signed in as",
		"admin.created":       "Record created.",
		"admin.updated":       "Record updated.",
		"admin.deleted":       "Record deleted.",
		"admin.save_failed":   "Save failed",
		"admin.delete_failed": "Delete failed",
		"admin.list_failed":   "Could not load the list.",
		"admin.not_found":     "Record not found.",

		"error.internal": "Internal error. Please try again.",
		"error.csrf":     "The form expired. Reload the page and try again.",
	},
}
